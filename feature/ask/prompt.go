package ask

import (
	"fmt"
	"strings"
)

// schemaPrompt describes the graph to the model. It is sent as the system message.
const schemaPrompt = `You write Cypher queries for a knowledge graph built from spreadsheet tables.

Nodes:
- Table {name}
- Row {id}
- Column {name}
- Cell {id, raw_value}
- Formula {expression}
- Constant {value}

Relationships:
- (Table)-[:HAS_ROW]->(Row)
- (Row)-[:HAS_CELL]->(Cell)
- (Cell)-[:HAS_COLUMN]->(Column)
- (Cell)-[:BELONGS_TO]->(Table)
- (Column)-[:USED_IN]->(Table)
- (Cell)-[:USES_FORMULA]->(Formula)
- (Cell)-[:USES_CONSTANT]->(Constant)
- (Formula)-[:DEPENDS_ON]->(Cell)

Rules:
- Column names are header texts; headers never start with a number or a formula.
- Literal values live in Constant nodes. Cell.raw_value holds the displayed value.
- To select a row by value (e.g. Product = "Product B"), match a Cell using the
  Constant with that value and linked to the Column of that name, then walk to
  the Row holding that Cell and read the other Cells of the Row.

Examples:
Revenue of the rows where Product = "Product B":
MATCH (c:Cell)-[:USES_CONSTANT]->(:Constant {value: "Product B"})
MATCH (c)-[:HAS_COLUMN]->(:Column {name: "Product"})
MATCH (c)<-[:HAS_CELL]-(r:Row)-[:HAS_CELL]->(target:Cell)-[:HAS_COLUMN]->(:Column {name: "Revenue"})
RETURN target.raw_value AS Revenue

Every value of the rows where Customer = "Alice Smith":
MATCH (c:Cell)-[:USES_CONSTANT]->(:Constant {value: "Alice Smith"})
MATCH (c)-[:HAS_COLUMN]->(:Column {name: "Customer"})
MATCH (c)<-[:HAS_CELL]-(r:Row)-[:HAS_CELL]->(target:Cell)-[:HAS_COLUMN]->(col:Column)
RETURN col.name AS Column, target.raw_value AS Value`

// questionPrompt wraps the user's question.
func questionPrompt(question string) string {
	return fmt.Sprintf("Generate a Cypher query (no markdown, no triple backticks) for:\n\n%q\n\nCypher:", question)
}

var queryCleaner = strings.NewReplacer(
	"```cypher", "",
	"```", "",
	`\n`, " ",
	`\"`, `"`,
)

// CleanQuery strips markdown fences and escaped newlines or quotes from a
// model answer and trims it.
func CleanQuery(raw string) string {
	return strings.TrimSpace(queryCleaner.Replace(raw))
}
