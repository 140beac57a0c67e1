/*
Package status models the lifecycle of a mover transfer job and tracks progress
observations while jobs are in flight.

	 Pending ──submit──► Running ──poll──► Succeeded
	    │                   │      └─────► Failed
	    │                   │      └─────► PartialFailure
	    │                   ├──timeout───► TimedOut
	    │                   └──cancel────► Cancelled
	    └──rejected──────────────────────► SubmissionFailed

🎯 Purpose:
- Single status vocabulary shared by the mover client, the orchestrator and the report
- Distinguishes mover terminal states from locally assigned ones
- Logs live progress (percent, speed, etr) the way the mover reports it

🤝 Types:
- Status: job lifecycle enum, text-marshalled for JSON reports
- Tracker: latest Progress per job, safe for concurrent pollers
- Formatter: human strings for progress and errors
*/
package status
