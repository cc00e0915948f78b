// Package policy provides the configurable rules a group follows once it is
// formed: who leads the group and in which order the leader releases members
// to the printer.  Engines that do not embed a Policy in their context get the
// default behaviour (first student leads, ascending release).
package policy
