/*
Package errors implements the error framework used across this repository.

The idea is to reuse as many root errors from this package as possible and
define custom package errors only when absolutely necessary. The gate
package is a good example of registering a custom code range with
Register(code, description).

Every root error carries a unique numeric code, which allows clients to
distinguish error kinds without string matching. Use ErrXyz.New("...") or
Wrap(err, "...") at the point of creation to ensure a stacktrace is
attached. If you wrap multiple times, only the first wrap records the
stacktrace.

Once you have an error, you can use fmt.Printf/Sprintf to get more context
for the error
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
