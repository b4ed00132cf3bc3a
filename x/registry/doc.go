/*
Package registry keeps track of who may take part in the review process.

Reviewers are registered by the administrator and carry a trust value.
Governance members are declared in the genesis file and are allowed to
update the trust of reviewers (see package reputation). The administrator
address is stored as the package configuration.
*/
package registry
