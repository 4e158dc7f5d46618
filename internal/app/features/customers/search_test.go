package customers_test

import (
	"testing"

	"github.com/dalemusser/lordsadmin/internal/app/features/customers"
	"github.com/dalemusser/lordsadmin/internal/domain/models"
	"github.com/dalemusser/lordsadmin/internal/testutil"
)

func names(cs []models.Customer) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestFilter(t *testing.T) {
	all := testutil.SampleCustomers()
	tests := []struct {
		q    string
		want []string
	}{
		{"", []string{"Meera Iyer", "arjun Das", "Zoya Khan"}},
		{"MEERA", []string{"Meera Iyer"}},
		{"arjun@", []string{"arjun Das"}},
		{"kolkata", []string{"Zoya Khan"}},
		{"example.com", []string{"Meera Iyer", "arjun Das", "Zoya Khan"}},
		{"nobody", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.q, func(t *testing.T) {
			if got := names(customers.Filter(all, tt.q)); !equal(got, tt.want) {
				t.Errorf("Filter(%q) = %v, want %v", tt.q, got, tt.want)
			}
		})
	}
}

func TestSort(t *testing.T) {
	all := testutil.SampleCustomers()
	tests := []struct {
		key, dir string
		want     []string
	}{
		{"name", "asc", []string{"arjun Das", "Meera Iyer", "Zoya Khan"}},
		{"name", "desc", []string{"Zoya Khan", "Meera Iyer", "arjun Das"}},
		{"visits", "asc", []string{"Zoya Khan", "Meera Iyer", "arjun Das"}},
		{"loyaltyPoints", "desc", []string{"Zoya Khan", "Meera Iyer", "arjun Das"}},
		{"createdAt", "asc", []string{"arjun Das", "Meera Iyer", "Zoya Khan"}},
		{"address", "asc", []string{"arjun Das", "Meera Iyer", "Zoya Khan"}},
	}
	for _, tt := range tests {
		t.Run(tt.key+"_"+tt.dir, func(t *testing.T) {
			if got := names(customers.Sort(all, tt.key, tt.dir)); !equal(got, tt.want) {
				t.Errorf("Sort(%s, %s) = %v, want %v", tt.key, tt.dir, got, tt.want)
			}
		})
	}

	if all[0].Name != "Meera Iyer" {
		t.Error("Sort must not reorder its input")
	}
}

func TestSortKey(t *testing.T) {
	for in, want := range map[string]string{
		"":              "name",
		"visits":        "visits",
		"loyaltyPoints": "loyaltyPoints",
		"password":      "name",
	} {
		if got := customers.SortKey(in); got != want {
			t.Errorf("SortKey(%q) = %q, want %q", in, got, want)
		}
	}
}
