//go:build !integration

package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestLogQueryOptions_Filter(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	tests := []struct {
		name string
		opts LogQueryOptions
		want bson.M
	}{
		{name: "empty", opts: LogQueryOptions{}, want: bson.M{}},
		{
			name: "audit filters",
			opts: LogQueryOptions{ActionType: "save_schedule", Actor: "site-office"},
			want: bson.M{"action_type": "save_schedule", "actor": "site-office"},
		},
		{
			name: "audit entries only",
			opts: LogQueryOptions{AuditOnly: true},
			want: bson.M{"action_type": bson.M{"$exists": true, "$ne": ""}},
		},
		{
			name: "action wins over audit only",
			opts: LogQueryOptions{ActionType: "export", AuditOnly: true},
			want: bson.M{"action_type": "export"},
		},
		{
			name: "path is matched literally",
			opts: LogQueryOptions{Path: "/api/bbs/calculate?x=1"},
			want: bson.M{"path": bson.M{"$regex": `/api/bbs/calculate\?x=1`, "$options": "i"}},
		},
		{
			name: "time range",
			opts: LogQueryOptions{StartTime: &start, EndTime: &end, Level: "error"},
			want: bson.M{"level": "error", "timestamp": bson.M{"$gte": start, "$lte": end}},
		},
		{
			name: "open ended range",
			opts: LogQueryOptions{StartTime: &start},
			want: bson.M{"timestamp": bson.M{"$gte": start}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.opts.filter())
		})
	}
}
