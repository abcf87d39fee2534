package safety

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSQL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		want        string
	}{
		{
			"empty output",
			"",
			"SELECT 1;",
		},
		{
			"whitespace only output",
			" \t\n\r  ",
			"SELECT 1;",
		},
		{
			"plain statement",
			"SELECT * FROM customers;",
			"SELECT * FROM customers;",
		},
		{
			"plain statement with surrounding whitespace",
			"\n  SELECT name FROM customers;  \n",
			"SELECT name FROM customers;",
		},
		{
			"fenced statement with language tag",
			"```sql\nSELECT * FROM customers;\n```",
			"SELECT * FROM customers;",
		},
		{
			"fenced statement with upper case language tag",
			"```SQL\nSELECT * FROM customers;\n```",
			"SELECT * FROM customers;",
		},
		{
			"fenced statement with mixed case language tag",
			"```Sql\nSELECT id FROM customers;\n```",
			"SELECT id FROM customers;",
		},
		{
			"fenced statement without language tag",
			"```\nSELECT email FROM customers;\n```",
			"SELECT email FROM customers;",
		},
		{
			"fenced statement with surrounding whitespace",
			"  \n```sql\n  SELECT 2;  \n```\n ",
			"SELECT 2;",
		},
		{
			"fences only",
			"```sql\n```",
			"",
		},
		{
			"fence markers inside the text",
			"Here you go: ```sql SELECT 1; ```",
			"Here you go:  SELECT 1;",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, ExtractSQL(tc.given))
		})
	}
}

func TestIsSelectOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		want        bool
	}{
		{
			"simple select",
			"SELECT * FROM customers;",
			true,
		},
		{
			"lower case select",
			"select name from customers",
			true,
		},
		{
			"select with leading whitespace",
			"\n\t  SELECT 1;",
			true,
		},
		{
			"fallback statement",
			"SELECT 1;",
			true,
		},
		{
			"select with join and aggregate",
			"SELECT c.name, COUNT(*) FROM customers c JOIN orders o ON o.customer_id = c.id GROUP BY c.name;",
			true,
		},
		{
			"column name containing a forbidden keyword",
			"SELECT created_at, updated_by FROM customers;",
			true,
		},
		{
			"identifier prefixed with a forbidden keyword",
			"SELECT dropped FROM deletions;",
			true,
		},
		{
			"empty text",
			"",
			false,
		},
		{
			"whitespace only text",
			"   \n",
			false,
		},
		{
			"statement that does not start with select",
			"DROP TABLE customers;",
			false,
		},
		{
			"common table expression",
			"WITH c AS (SELECT 1) SELECT * FROM c;",
			false,
		},
		{
			"select prefix without word boundary",
			"SELECTED FROM customers;",
			false,
		},
		{
			"prose before the statement",
			"Here is the query: SELECT 1;",
			false,
		},
		{
			"select followed by drop",
			"SELECT * FROM t; DROP TABLE t;",
			false,
		},
		{
			"select with lower case forbidden keyword",
			"SELECT * FROM t; delete from t;",
			false,
		},
		{
			"select with forbidden keyword inside a string literal",
			"SELECT * FROM customers WHERE name = 'update';",
			false,
		},
		{
			"select with replace function",
			"SELECT REPLACE(name, 'a', 'b') FROM customers;",
			false,
		},
		{
			"select with pragma",
			"SELECT * FROM pragma_table_info('customers');",
			true,
		},
		{
			"select followed by pragma statement",
			"SELECT 1; PRAGMA foreign_keys = OFF;",
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, IsSelectOnly(tc.given))
		})
	}
}

func TestIsSelectOnlyRejectsEveryForbiddenKeyword(t *testing.T) {
	t.Parallel()

	for _, keyword := range ForbiddenKeywords {
		keyword := keyword
		t.Run(keyword, func(t *testing.T) {
			t.Parallel()

			assert.False(t, IsSelectOnly("SELECT 1; "+keyword+" x;"))
			assert.False(t, IsSelectOnly("SELECT 1; "+strings.ToLower(keyword)+" x;"))
			assert.False(t, IsSelectOnly(keyword+" x;"))
		})
	}
}

func TestExtractThenValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		description string
		given       string
		sql         string
		want        bool
	}{
		{
			"fenced select",
			"```sql\nSELECT * FROM customers;\n```",
			"SELECT * FROM customers;",
			true,
		},
		{
			"empty model output",
			"",
			"SELECT 1;",
			true,
		},
		{
			"fenced drop",
			"```sql\nDROP TABLE customers;\n```",
			"DROP TABLE customers;",
			false,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.description, func(t *testing.T) {
			t.Parallel()

			sql := ExtractSQL(tc.given)

			assert.Equal(t, tc.sql, sql)
			assert.Equal(t, tc.want, IsSelectOnly(sql))
		})
	}
}

func TestFindForbidden(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DROP", FindForbidden("SELECT 1; drop table t;"))
	assert.Equal(t, "INSERT", FindForbidden("insert into t values (1); DELETE FROM t;"))
	assert.Empty(t, FindForbidden("SELECT created_at FROM t;"))
}
