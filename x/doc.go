/*
Package x contains the authentication helpers shared by all extensions.

Extensions never read signatures themselves. They receive an Authenticator
in their constructor and ask it which principals authorized the current
call. All sub-packages are extensions that together build the fund.
*/
package x
