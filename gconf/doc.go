/*
Package gconf keeps the configuration of extensions in the database.

Each extension owns a single configuration record stored under the
"_c:<package>" key. The record is created from the genesis document, read
from opts["conf"][<package>], and validated before every write.
*/
package gconf
