/*
Package poorify holds the types shared by every part of the poorify server:
the Environment it runs in, the keys used to stash values in a request's context,
and the User a session can be associated with.

The HTTP surface lives in http/handler and is assembled by ranger.
*/
package poorify
