package database

import "testing"

func TestDSN(t *testing.T) {
	opts := Options{Host: "localhost", Port: "5432", User: "warehouse_user", Password: "secret", Name: "warehouse_db", SSLMode: "disable"}
	want := "host=localhost port=5432 user=warehouse_user password=secret dbname=warehouse_db sslmode=disable"
	if got := opts.DSN(); got != want {
		t.Fatalf("DSN = %q, want %q", got, want)
	}
}
