/*
The resp package provides a high-level API for responding to HTTP requests
with an easy way to configure the responses application-wide.

resp provides four main ways of responding to an HTTP request:
  - rendering text
  - rendering JSON data
  - redirecting
  - failing with a status code
*/
package resp
