package models_test

import (
	"testing"

	"github.com/almanacai/almanac/internal/models"
)

func TestAskRequestSetDefaults(t *testing.T) {
	cases := []struct {
		name    string
		timeout int
		want    int
	}{
		{"zero gets default", 0, 120},
		{"below floor clamps up", 1, 5},
		{"above ceiling clamps down", 3600, 600},
		{"in range untouched", 45, 45},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := models.AskRequest{Question: "q", Timeout: tc.timeout}
			req.SetDefaults()
			if req.Timeout != tc.want {
				t.Errorf("Timeout = %d, want %d", req.Timeout, tc.want)
			}
		})
	}
}
