/*
Package ranger constructs and runs the poorify server with sane defaults.

# Ranger

The main entrypoint to package ranger is the [Ranger] type.
A [Ranger] ought to be constructed with [New] using a [Config],
usually the one [NewConfig] reads from the environment.

[*Ranger.Guide] begins the web server.
By default, [*Ranger.Guide] listens on [DefaultHost]:[DefaultPort] (0.0.0.0:5000).
Stop that web server with [*Ranger.Shutdown]
or send a signal [*Ranger.Guide] listens for.

# Configuration

Environment variables ought to be set in a file called ".env"
found at the same directory the server is executed from.
[NewConfig] lists them.

In DEVELOPMENT and TESTING, missing Google credentials swap in [auth.Stub]
and missing keys are generated for the life of the process.
Elsewhere, [New] returns [ErrBadConfig] for them.
*/
package ranger
