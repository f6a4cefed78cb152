// Package upgrade drives a selected parcel through download, distribution and
// activation, polling the control plane until each stage is reached.
//
// A parcel found mid-lifecycle resumes from its observed stage. Each stage has
// its own poll budget; running out of it, or the control plane attaching errors
// to the parcel, aborts the upgrade without rollback.
package upgrade
