// Package preflight verifies that the directories a conversion run touches
// exist and are accessible before any file is converted.
package preflight
