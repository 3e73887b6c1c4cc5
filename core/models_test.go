package core

import "testing"

func TestChunkID(t *testing.T) {
	tests := []struct {
		name    string
		pageID  string
		ordinal int
		want    string
	}{
		{
			name:    "first chunk",
			pageID:  "p1",
			ordinal: 0,
			want:    "p1_0",
		},
		{
			name:    "later chunk",
			pageID:  "p1",
			ordinal: 12,
			want:    "p1_12",
		},
		{
			name:    "uuid-style page id",
			pageID:  "1f2e3d4c-0000-4b5a-9c8d-aabbccddeeff",
			ordinal: 3,
			want:    "1f2e3d4c-0000-4b5a-9c8d-aabbccddeeff_3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChunkID(tt.pageID, tt.ordinal); got != tt.want {
				t.Errorf("ChunkID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestChunkIDDeterministic(t *testing.T) {
	if ChunkID("p1", 2) != ChunkID("p1", 2) {
		t.Error("ChunkID() is not deterministic")
	}
}

func TestLessonString(t *testing.T) {
	l := Lesson{Course: "SEO", Title: "Intro"}
	if got := l.String(); got != "Intro (SEO)" {
		t.Errorf("Lesson.String() = %q", got)
	}
}
