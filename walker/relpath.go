// Package walker implements the depth-first class-inclusion walk that
// turns a node's (or class's) declared class list into the fully
// resolved, ordered list of classes/applications/parameters a node
// inherits, per spec.md's CLASS_WALK operation.
package walker

import "strings"

// AbsClassName turns a relative class name (one or more leading `.`)
// into an absolute, dot-joined class name anchored at ownLoc — the
// dotted directory containing the class/node declaring it (for a
// class file a/b/c.yml this is "a.b", not "a.b.c"), or "" for the
// inventory root. A class name with no leading dot is already absolute
// and is returned unchanged. Consuming dots past the root clamps to
// the root rather than erroring, matching spec.md S9.
func AbsClassName(ownLoc, class string) string {
	if !strings.HasPrefix(class, ".") {
		return class
	}

	var segments []string
	if ownLoc != "" {
		segments = strings.Split(ownLoc, ".")
	}
	// A placeholder accounts for the first leading dot placing the
	// class in ownLoc's own directory rather than its parent.
	segments = append(segments, "")

	cls := class
	for strings.HasPrefix(cls, ".") {
		if len(segments) > 0 {
			segments = segments[:len(segments)-1]
		}
		cls = cls[1:]
	}

	if len(segments) == 0 {
		return cls
	}
	return strings.Join(segments, ".") + "." + cls
}
