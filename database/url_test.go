package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructDatabaseURL(t *testing.T) {
	tests := []struct {
		name         string
		baseURL      string
		databaseName string
		want         string
	}{
		{
			name:    "no database name",
			baseURL: "postgres://u:p@localhost:5432",
			want:    "postgres://u:p@localhost:5432",
		},
		{
			name:         "plain base",
			baseURL:      "postgres://u:p@localhost:5432",
			databaseName: "hellbingo",
			want:         "postgres://u:p@localhost:5432/hellbingo?sslmode=disable",
		},
		{
			name:         "trailing slash",
			baseURL:      "postgres://u:p@localhost:5432/",
			databaseName: "hellbingo",
			want:         "postgres://u:p@localhost:5432/hellbingo?sslmode=disable",
		},
		{
			name:         "existing query",
			baseURL:      "postgres://u:p@db:5432?connect_timeout=5",
			databaseName: "hellbingo",
			want:         "postgres://u:p@db:5432/hellbingo?connect_timeout=5&sslmode=disable",
		},
		{
			name:         "sslmode kept",
			baseURL:      "postgres://u:p@db:5432?sslmode=require",
			databaseName: "hellbingo",
			want:         "postgres://u:p@db:5432/hellbingo?sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConstructDatabaseURL(tt.baseURL, tt.databaseName))
		})
	}
}
