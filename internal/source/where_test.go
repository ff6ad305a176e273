package source

import "testing"

func TestNewWhereBuilder(t *testing.T) {
	wb := NewWhereBuilder()

	if wb.NextArgIndex() != 1 {
		t.Errorf("expected argIndex to be 1, got %d", wb.NextArgIndex())
	}

	whereClause, args := wb.Build()
	if whereClause != "" {
		t.Errorf("expected empty string for no conditions, got %q", whereClause)
	}
	if args != nil {
		t.Errorf("expected nil args for no conditions, got %v", args)
	}
}

func TestWhereBuilder_Add(t *testing.T) {
	wb := NewWhereBuilder()
	wb.Add("status", "")
	wb.Add("status", "active")
	wb.Add("type", "user")

	whereClause, args := wb.Build()

	expectedClause := " WHERE status = $1 AND type = $2"
	if whereClause != expectedClause {
		t.Errorf("expected %q, got %q", expectedClause, whereClause)
	}
	if len(args) != 2 || args[0] != "active" || args[1] != "user" {
		t.Errorf("expected args ['active', 'user'], got %v", args)
	}
}

func TestWhereBuilder_AddSearch(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		columns    []ColumnSpec
		wantClause string
		wantArg    string
	}{
		{
			name:       "empty query skipped",
			query:      "",
			columns:    []ColumnSpec{{Key: "name", Text: true}},
			wantClause: "",
		},
		{
			name:       "single text column",
			query:      "ann",
			columns:    []ColumnSpec{{Key: "name", DBColumn: "name_col", Text: true}},
			wantClause: ` WHERE ("name_col" ILIKE $1)`,
			wantArg:    "%ann%",
		},
		{
			name:  "non-text columns are cast",
			query: "75",
			columns: []ColumnSpec{
				{Key: "name", Text: true},
				{Key: "amount"},
			},
			wantClause: ` WHERE ("name" ILIKE $1 OR "amount"::text ILIKE $1)`,
			wantArg:    "%75%",
		},
		{
			name:  "excluded columns",
			query: "x",
			columns: []ColumnSpec{
				{Key: "secret", Text: true, NoSearch: true},
			},
			wantClause: "",
		},
		{
			name:       "derives db column from key",
			query:      "x",
			columns:    []ColumnSpec{{Key: "User Name", Text: true}},
			wantClause: ` WHERE ("user_name" ILIKE $1)`,
			wantArg:    "%x%",
		},
		{
			name:       "like wildcards escaped",
			query:      "50%_off",
			columns:    []ColumnSpec{{Key: "promo", Text: true}},
			wantClause: ` WHERE ("promo" ILIKE $1)`,
			wantArg:    `%50\%\_off%`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := NewWhereBuilder()
			wb.AddSearch(tt.query, tt.columns)

			gotClause, gotArgs := wb.Build()
			if gotClause != tt.wantClause {
				t.Errorf("clause = %q, want %q", gotClause, tt.wantClause)
			}
			if tt.wantArg == "" {
				if len(gotArgs) != 0 {
					t.Errorf("expected no args, got %v", gotArgs)
				}
				return
			}
			if len(gotArgs) != 1 || gotArgs[0] != tt.wantArg {
				t.Errorf("args = %v, want [%q]", gotArgs, tt.wantArg)
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"orders", `"orders"`},
		{`weird"name`, `"weird""name"`},
		{`"; DROP TABLE x; --`, `"""; DROP TABLE x; --"`},
	}
	for _, tt := range tests {
		if got := quoteIdentifier(tt.in); got != tt.want {
			t.Errorf("quoteIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
