/*
Package config loads accsend settings from YAML, HCL or JSON files.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	     +-------------+-------------+
	     |             |             |
	+----+----+   +----+----+   +----+----+
	|  YAML   |   |   HCL   |   |  JSON   |
	| Parser  |   | Parser  |   | Parser  |
	+---------+   +---------+   +---------+

🎯 Sections:
- tracker: provider, server, user, api key (or the env var holding it)
- mover: provider, endpoint, workspace, user, api key
- transfer: poll interval, per-job timeout, poll error budget, concurrency
- resolve: project roots, excluded locations, ignore patterns

Unset connection fields fall back to FTRACK_SERVER, FTRACK_API_USER,
FTRACK_API_KEY, ACCSYN_ENDPOINT, ACCSYN_DOMAIN, ACCSYN_API_USER and
ACCSYN_API_KEY. Durations use time.ParseDuration syntax ("2s", "1h").

Example (YAML):

	tracker:
	  server: https://studio.ftrackapp.com
	  user: pipeline@studio.com
	mover:
	  endpoint: https://studio.accsyn.com
	  user: pipeline@studio.com
	transfer:
	  poll_interval: 2s
	  job_timeout: 1h
	  concurrent: true
	resolve:
	  project_roots: ["P:\\", "/mnt/projects"]
	  ignore_patterns: ["ftrackreview-*", "thumbnail"]
*/
package config
