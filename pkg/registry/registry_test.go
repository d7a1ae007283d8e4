// pkg/registry/registry_test.go
package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validActivity(id, taskType string) Activity {
	return Activity{
		ID:          id,
		DisplayName: "Add Shortlist Entry",
		Description: "Adds a university to the user's shortlist",
		Category:    "shortlist",
		TaskType:    taskType,
	}
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity-registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.0.0",
		"activities": [
			{"id": "shortlist.entry.add", "displayName": "Add Shortlist Entry",
			 "description": "d", "category": "shortlist", "taskType": "add-shortlist-entry"}
		]
	}`), 0644))

	reg, err := LoadRegistry(path)

	require.NoError(t, err)
	require.Len(t, reg.Activities, 1)
	assert.Equal(t, "shortlist.entry.add", reg.Activities[0].ID)
	assert.NotNil(t, reg.FindByTaskType("add-shortlist-entry"))
	assert.Nil(t, reg.FindByTaskType("unknown"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		activities []Activity
		wantErr    string
	}{
		{
			name:       "valid",
			activities: []Activity{validActivity("shortlist.entry.add", "add-shortlist-entry")},
		},
		{
			name:    "empty",
			wantErr: "no activities",
		},
		{
			name: "duplicate id",
			activities: []Activity{
				validActivity("shortlist.entry.add", "add-shortlist-entry"),
				validActivity("shortlist.entry.add", "remove-shortlist-entry"),
			},
			wantErr: "duplicate",
		},
		{
			name:       "bad naming",
			activities: []Activity{validActivity("AddEntry", "add-shortlist-entry")},
			wantErr:    "AddEntry",
		},
		{
			name: "missing task type",
			activities: []Activity{
				{ID: "shortlist.entry.add", DisplayName: "Add", Category: "shortlist"},
			},
			wantErr: "TaskType",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &ActivityRegistry{Version: "1.0.0", Activities: tt.activities}
			err := reg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
