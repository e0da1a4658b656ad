package mines

import "testing"

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  GameParams
		wantErr bool
	}{
		{"classic", GameParams{Width: 9, Height: 9, MineCount: 10}, false},
		{"single cell free", GameParams{Width: 2, Height: 2, MineCount: 3}, false},
		{"zero width", GameParams{Width: 0, Height: 9, MineCount: 10}, true},
		{"negative height", GameParams{Width: 9, Height: -1, MineCount: 10}, true},
		{"no mines", GameParams{Width: 9, Height: 9, MineCount: 0}, true},
		{"full board", GameParams{Width: 3, Height: 3, MineCount: 9}, true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			err := test.params.Validate()
			if (err != nil) != test.wantErr {
				t.Errorf("Validate() = %v, want error: %v", err, test.wantErr)
			}
		})
	}
}

func TestSeedRoundtrip(t *testing.T) {
	t.Parallel()

	params := GameParams{Width: 30, Height: 16, MineCount: 99, SafeOpening: true}
	parsed, err := ParseSeed(params.Seed())
	if err != nil {
		t.Fatal(err)
	}
	if *parsed != params {
		t.Errorf("have %+v, want %+v", *parsed, params)
	}

	if _, err := ParseSeed("not a seed"); err == nil {
		t.Error("expected an error for a malformed seed")
	}
}

func TestPointInBounds(t *testing.T) {
	t.Parallel()

	p := GameParams{Width: 4, Height: 3, MineCount: 1}
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{3, 2, true},
		{4, 2, false},
		{3, 3, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, test := range tests {
		if have := p.PointInBounds(test.x, test.y); have != test.want {
			t.Errorf("PointInBounds(%d, %d) = %v, want %v",
				test.x, test.y, have, test.want)
		}
	}
}
