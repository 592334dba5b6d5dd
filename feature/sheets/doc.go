// Package sheets receives single-cell change notifications and applies them to
// the graph through the reconciler.
//
// The webhook body mirrors what a spreadsheet onEdit trigger posts:
//
//	{"address": "C3", "sheetName": "Sales", "value": 200, "formula": "=B3*2"}
//
// "sheet" is accepted in place of "sheetName". Updates whose cell cannot be
// mapped to a registered block are dropped and answered with 422.
package sheets
