package model

import "testing"

func TestListOwned(t *testing.T) {
	ownerID := "01HX5ZZKBKACTAV9WEVGEMMVRZ"
	empty := ""

	tests := []struct {
		name string
		list List
		want bool
	}{
		{"owned", List{OwnerID: &ownerID}, true},
		{"anonymous", List{}, false},
		{"empty owner id", List{OwnerID: &empty}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.list.Owned(); got != tt.want {
				t.Errorf("Owned() = %v, want %v", got, tt.want)
			}
		})
	}
}
