// Package table turns baseball-reference HTML tables into ordered records.
//
// A Document searches for tables by id in the visible tree first and then in
// markup the site hides inside HTML comments. Body rows that carry a player
// link are extracted as trimmed cell text, the link is resolved to either a
// canonical player id or an alternate URL, and an Assembler merges one or more
// same-shaped tables into a RecordSet whose columns are the source headings
// (minus the leading rank column) followed by player_ID and Alt URL.
//
// Nothing in this package performs I/O or keeps state between calls: the same
// document always yields the same records.
package table
