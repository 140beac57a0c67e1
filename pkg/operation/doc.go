/*
Package operation implements the send action end to end.

	+-------------+      +-------------+      +--------------+
	|   tracker   | ---> |   resolve   | ---> |   transfer   |
	|  (harvest)  |      | (path/site) |      | (build/run)  |
	+-------------+      +-------------+      +------+-------+
	                                                 |
	                                          +------+-------+
	                                          |    report    |
	                                          +--------------+

🎯 Purpose:
- Harvests every component beneath the selected entities
- Resolves paths and locations, keeping failures per component
- Groups what resolved into mover jobs and follows them to the end
- Hands back exactly one outcome per selected component

🔄 Flow:
 1. Reject an empty selection or identical source and destination
 2. Harvest components from the tracker
 3. Map the destination (and source) location to mover sites; an unmapped
    location aborts before anything is submitted
 4. Resolve relative paths, apply ignore patterns
 5. Build one job per source, destination and project
 6. Submit and await through the orchestrator
 7. Summarize

⚡ Runner:
OperationRunner runs an operation inline or in the background. In both modes a
cancelled context still returns the partial report the operation produced.
*/
package operation
