// Package ask answers natural-language questions about ingested spreadsheets.
//
// A fixed description of the graph schema is sent to an OpenAI-compatible
// chat model together with the question. The returned text is cleaned of
// markdown fences and escape sequences and executed verbatim against the graph
// store; the query and its records are returned to the caller.
package ask
