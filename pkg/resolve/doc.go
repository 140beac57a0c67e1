/*
Package resolve translates tracker-side identity into mover-side identity.

	tracker.Component ──► Resolver ──► RelativePath{code, "assets/a.geo"}
	location name ──────► Mapper ────► mover.Site

🎯 Rules:
- A tracker location maps to the mover site with the identical (case-sensitive) name
- A component path is split on both separators; the first segment equal to the
  project code anchors the relative path
- Everything after the anchor, joined with "/", is the relative path; it may not be
  empty or contain ".."
- When project roots are configured the anchor must sit directly beneath one of them

Resolution errors are sentinels (ErrProjectCodeNotFound, ErrLocationNotMapped, ...)
checked with errors.Is.
*/
package resolve
