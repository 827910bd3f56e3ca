// Package models defines the enrollment domain entities.
//
//   - [Person] : a validated first and last name pair
//   - [Student] : a [Person] enrolled in a course
//   - [Enrollment] : the flat three-field record written to disk
//
// Names are validated when set and are immutable afterwards except through the
// setters, which apply the same rule. Accessors return names in title case.
package models
