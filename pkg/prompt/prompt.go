package prompt

import "fmt"

// DefaultSchema is substituted when the caller does not describe a schema.
const DefaultSchema = "customers(id, name, email)"

const sqliteTemplate = `Du bist ein SQL-Generator. Erzeuge eine gültige SQLite SELECT-Abfrage.

REGELN:
- Gib NUR SQL zurück (keine Erklärungen, kein Markdown).
- Nur SELECT. KEIN INSERT/UPDATE/DELETE/DROP/ALTER/CREATE.
- Nutze nur Tabellen/Spalten aus dem Schema.
- Wenn etwas nicht möglich ist, gib ein leeres SELECT zurück: SELECT 1;

SCHEMA:
%s

FRAGE:
%s`

// BuildSQLitePrompt renders the instruction block sent to the model. The
// rules are guidance only; the output is still checked by package safety.
func BuildSQLitePrompt(question, schema string) string {
	return fmt.Sprintf(sqliteTemplate, schema, question)
}
