// Package scheduler is the patient admission queue of the hospital service.
//
// Waiting patients live in a min-heap keyed on (severity, sequence): the
// smallest severity is served first and the insertion sequence, drawn from a
// counter that only ever grows within a day, breaks ties. No two keys are
// ever equal, so the service order is fully deterministic.
//
// Every mutation is written through a Persister as a dated snapshot. State is
// only trusted on the calendar day it was recorded; anything older is
// replaced by an empty queue for today. Persistence is best effort and never
// fails a queue operation.
package scheduler
