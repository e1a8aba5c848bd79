package entities

// GeneratedQuery is the SQL the assistant proposes for a question
type GeneratedQuery struct {
	Question string
	Query    string
	Message  string
}

// QueryResult is a tabular read-only query result rendered as strings.
// NULL values are rendered as "NULL".
type QueryResult struct {
	Columns []string
	Rows    [][]string
}
