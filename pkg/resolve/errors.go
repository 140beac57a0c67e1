package resolve

import (
	"gitlab.com/tozd/go/errors"
)

var (
	// ErrLocationNotMapped means no mover site carries the tracker location's name
	ErrLocationNotMapped = errors.Base("location not mapped to a mover site")
	// ErrEmptyLocationName means a lookup was attempted with no location name
	ErrEmptyLocationName = errors.Base("empty location name")
	// ErrExcludedLocation means a tracker-internal location was picked as a transfer endpoint
	ErrExcludedLocation = errors.Base("location is internal to the tracker and cannot be targeted")
	// ErrSameLocation means source and destination are the same location
	ErrSameLocation = errors.Base("source and destination location are the same")

	// ErrMissingPath means the component has no recorded path in any usable location
	ErrMissingPath = errors.Base("component has no path")
	// ErrProjectCodeNotFound means no path segment equals the project code
	ErrProjectCodeNotFound = errors.Base("project code not found in path")
	// ErrEmptyRelativePath means the project code is the last path segment
	ErrEmptyRelativePath = errors.Base("empty relative path")
	// ErrPathEscapesProject means the relative path climbs out of the project root
	ErrPathEscapesProject = errors.Base("path escapes project root")
	// ErrUnsupportedLayout means the project does not sit directly beneath a configured root
	ErrUnsupportedLayout = errors.Base("project not directly beneath a project root")
)
