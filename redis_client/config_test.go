package redis_client

import "testing"

func TestConfig_Addr(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		want   string
	}{
		{
			name:   "localhost default port",
			config: Config{Host: "localhost", Port: "6379"},
			want:   "localhost:6379",
		},
		{
			name:   "custom host and port",
			config: Config{Host: "redis.internal", Port: "6380"},
			want:   "redis.internal:6380",
		},
		{
			name:   "ipv4 address",
			config: Config{Host: "10.0.0.5", Port: "6379"},
			want:   "10.0.0.5:6379",
		},
		{
			name:   "empty host keeps separator",
			config: Config{Host: "", Port: "6379"},
			want:   ":6379",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Addr(); got != tt.want {
				t.Errorf("Addr() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfig_Configured(t *testing.T) {
	unset := Config{Port: "6379"}
	if unset.Configured() {
		t.Error("Configured() = true without a host")
	}

	set := Config{Host: "localhost", Port: "6379"}
	if !set.Configured() {
		t.Error("Configured() = false with a host")
	}
}

func TestConfig_EmptyPassword(t *testing.T) {
	config := Config{Host: "localhost", Port: "6379"}
	if config.Password != "" {
		t.Errorf("zero-value password = %q, want empty", config.Password)
	}
	if config.DB != 0 {
		t.Errorf("zero-value DB = %d, want 0", config.DB)
	}
}
