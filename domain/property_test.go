package domain

import "testing"

func f64(v float64) *float64 { return &v }

func TestDisplayPrice(t *testing.T) {
	tests := []struct {
		name string
		p    Property
		want float64
	}{
		{"sale uses price", Property{OperationType: OperationSale, Price: 100, RentPrice: 5}, 100},
		{"rent uses rent price", Property{OperationType: OperationRent, Price: 100, RentPrice: 5}, 5},
		{"short term rent uses rent price", Property{OperationType: OperationShortTermRent, Price: 100, RentPrice: 7}, 7},
		{"rent without rent price falls back", Property{OperationType: OperationRent, Price: 100}, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.DisplayPrice(); got != tc.want {
				t.Errorf("DisplayPrice() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestHasCoordinates(t *testing.T) {
	tests := []struct {
		name string
		p    Property
		want bool
	}{
		{"unset", Property{}, false},
		{"valid", Property{Latitude: f64(19.43), Longitude: f64(-99.13)}, true},
		{"zero zero means unset", Property{Latitude: f64(0), Longitude: f64(0)}, false},
		{"zero latitude alone is fine", Property{Latitude: f64(0), Longitude: f64(-99.13)}, true},
		{"latitude out of range", Property{Latitude: f64(91), Longitude: f64(10)}, false},
		{"longitude out of range", Property{Latitude: f64(10), Longitude: f64(181)}, false},
		{"only one side set", Property{Latitude: f64(19.43)}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.p.HasCoordinates(); got != tc.want {
				t.Errorf("HasCoordinates() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestValidImageRef(t *testing.T) {
	valid := []string{
		"http://example.com/a.jpg",
		"https://cdn.example.com/b.png",
		"data:image/png;base64,iVBORw0KGgo=",
	}
	for _, ref := range valid {
		if !ValidImageRef(ref) {
			t.Errorf("ValidImageRef(%q) = false, want true", ref)
		}
	}
	invalid := []string{
		"blob:https://app.example.com/0a1b2c",
		"file:///tmp/photo.jpg",
		"/uploads/photo.jpg",
		"",
	}
	for _, ref := range invalid {
		if ValidImageRef(ref) {
			t.Errorf("ValidImageRef(%q) = true, want false", ref)
		}
	}
}

func TestSanitizeImagesReplacesAndResets(t *testing.T) {
	p := Property{
		Images:         []string{"blob:abc", "https://ok.example.com/a.jpg"},
		MainPhotoIndex: 3,
	}
	if !p.SanitizeImages() {
		t.Fatal("expected changes to be reported")
	}
	if p.Images[0] != PlaceholderImage {
		t.Errorf("Images[0] = %q, want placeholder", p.Images[0])
	}
	if p.Images[1] != "https://ok.example.com/a.jpg" {
		t.Errorf("Images[1] = %q, valid ref must survive", p.Images[1])
	}
	if p.MainPhotoIndex != 0 {
		t.Errorf("MainPhotoIndex = %d, want 0", p.MainPhotoIndex)
	}
	if p.SanitizeImages() {
		t.Error("sanitizing a clean row must report no change")
	}
}
