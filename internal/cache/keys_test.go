package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "summary",
			objectType:  "result",
			identifier:  "abc123",
			paramsKey:   nil,
			expectedKey: "learnbyte:summary:result:abc123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "summary",
			objectType:  "result",
			identifier:  "abc123",
			paramsKey:   []string{},
			expectedKey: "learnbyte:summary:result:abc123",
		},
		{
			name:        "with one paramsKey",
			serviceName: "summary",
			objectType:  "result",
			identifier:  "abc123",
			paramsKey:   []string{"250"},
			expectedKey: "learnbyte:summary:result:abc123:250",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "assessment",
			objectType:  "batch",
			identifier:  "xyz",
			paramsKey:   []string{"5", "v2"},
			expectedKey: "learnbyte:assessment:batch:xyz:5_v2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if got != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", got, tt.expectedKey)
			}
		})
	}
}

func TestHashStringStable(t *testing.T) {
	a := HashString("some transcript text")
	b := HashString("some transcript text")
	if a != b {
		t.Errorf("HashString not stable: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if a == HashString("different text") {
		t.Error("different inputs should hash differently")
	}
}
