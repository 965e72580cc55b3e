package imagery

import (
	"slices"
	"testing"
)

func TestImagePath(t *testing.T) {
	tests := []struct {
		key, modality, view string
		want                string
	}{
		{"gasbubbles", "MRI", "SWI", "medical_images/gasbubbles_case/gasbubbles_mri_swi.jpg"},
		{"trauma", "CT Venogram", "Coronal venogram", "medical_images/trauma_case/trauma_ctv_coronal.jpg"},
		{"trauma", "CT Head", "SWI", ""},
		{"trauma", "MRI", "SWI", ""},
		{"nope", "MRI", "SWI", ""},
		{"normalbrain", "MRI", "FLAIR", ""},
	}
	for _, tt := range tests {
		got := ImagePath(tt.key, tt.modality, tt.view)
		if got != tt.want {
			t.Errorf("ImagePath(%q, %q, %q) = %q, want %q", tt.key, tt.modality, tt.view, got, tt.want)
		}
	}
}

func TestModalitiesOrder(t *testing.T) {
	got := Modalities("trauma")
	want := []string{"CT Head", "CT Venogram"}
	if !slices.Equal(got, want) {
		t.Errorf("Modalities(trauma) = %v, want %v", got, want)
	}
}

func TestViewsOrder(t *testing.T) {
	got := Views("gasbubbles", "MRI")
	want := []string{"FLAIR", "T2", "SWI"}
	if !slices.Equal(got, want) {
		t.Errorf("Views(gasbubbles, MRI) = %v, want %v", got, want)
	}
}

func TestEmptySafe(t *testing.T) {
	if got := Modalities("missing"); got == nil || len(got) != 0 {
		t.Errorf("Modalities(missing) = %#v, want empty non-nil", got)
	}
	if got := Views("trauma", "PET"); got == nil || len(got) != 0 {
		t.Errorf("Views(trauma, PET) = %#v, want empty non-nil", got)
	}
	if m, v := Defaults("missing"); m != "" || v != "" {
		t.Errorf("Defaults(missing) = %q, %q", m, v)
	}
}

func TestDefaultsAreResolvable(t *testing.T) {
	for _, key := range Keys() {
		m, v := Defaults(key)
		if !HasView(key, m, v) {
			t.Errorf("%s: default %q/%q is not a registered view", key, m, v)
		}
		if HasImages(key) && ImagePath(key, m, v) == "" {
			t.Errorf("%s: default view has no image", key)
		}
	}
}

func TestHasImages(t *testing.T) {
	for key, want := range map[string]bool{
		"gasbubbles":  true,
		"trauma":      true,
		"normalbrain": false,
		"missing":     false,
	} {
		if got := HasImages(key); got != want {
			t.Errorf("HasImages(%q) = %v, want %v", key, got, want)
		}
	}
	if got := ImagePath("normalbrain", "MRI", "SWI"); got != "" {
		t.Errorf("normalbrain SWI = %q, want no image", got)
	}
}

func TestFirstView(t *testing.T) {
	if got := FirstView("trauma", "CT Venogram"); got != "Axial venogram" {
		t.Errorf("FirstView = %q", got)
	}
	if got := FirstView("trauma", "PET"); got != "" {
		t.Errorf("FirstView(unknown) = %q, want empty", got)
	}
}

func TestParseSets_Duplicate(t *testing.T) {
	_, err := parseSets([]byte("- key: a\n- key: a\n"))
	if err == nil {
		t.Fatal("expected duplicate key error")
	}
}

func TestNormalizeCaseKey(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Gas Bubbles on SWI", "gasbubbles"},
		{"gas bubbles swi", "gasbubbles"},
		{"Trauma Gas", "trauma"},
		{"Normal Brain", "normalbrain"},
		{"Subdural Hematoma", FallbackKey},
		{"", FallbackKey},
	}
	for _, tt := range tests {
		if got := NormalizeCaseKey(tt.name); got != tt.want {
			t.Errorf("NormalizeCaseKey(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
	if NormalizeCaseKey("Gas Bubbles on SWI") != NormalizeCaseKey("gas bubbles swi") {
		t.Error("normalization must be case-insensitive")
	}
}

func TestNormalizeCaseKey_PriorityOrder(t *testing.T) {
	// Both fragments present: "gas bubbles" is checked first.
	if got := NormalizeCaseKey("Trauma with gas bubbles"); got != "gasbubbles" {
		t.Errorf("got %q, want gasbubbles", got)
	}
}
