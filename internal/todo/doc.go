// Package todo models a single task record and the state transitions that
// apply to it in isolation.
//
// A record serialises to the following JSON object (optional fields may be
// absent or null):
//
//	{
//	  "id": "3f1c2a9e-7b0d-4c55-9a57-1d7f0e0b8c11",
//	  "title": "Buy milk",
//	  "description": "",
//	  "priority": "Medium",
//	  "category": "Shopping",
//	  "tags": ["errand"],
//	  "due_date": "2024-05-01T18:00:00+02:00",
//	  "completed": false,
//	  "completed_at": null,
//	  "created_at": "2024-04-30T09:12:44.123456789+02:00",
//	  "estimated_time": 0.5,
//	  "actual_time": null,
//	  "subtasks": [{"id": "...", "title": "...", "completed": false, "created_at": "..."}],
//	  "notes": [{"id": "...", "text": "...", "created_at": "..."}]
//	}
//
// # Timestamps
//
// Timestamps are written as RFC 3339 with nanosecond precision. Reading also
// accepts naive ISO-8601 values without an offset (for example
// "2024-04-30T09:12:44.123456" or "2024-04-30"), interpreted in local time.
// An unparseable timestamp is a decode error naming the offending field.
//
// # Defaults
//
//   - description: ""
//   - priority: "Medium"
//   - category: "General"
//   - completed: false
//
// # Clock
//
// Nothing in this package reads the wall clock. Every operation that stamps
// or compares a time takes an explicit now.
package todo
