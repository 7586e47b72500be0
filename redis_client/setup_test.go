package redis_client

import (
	"context"
	"net"
	"os"
	"strconv"
	"testing"
	"time"
)

// integrationRedisConfig builds a Config from REDIS_TEST_ADDR, skipping the
// test when the variable is unset so the suite stays green without a server.
func integrationRedisConfig(t *testing.T) Config {
	t.Helper()

	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("set REDIS_TEST_ADDR to run redis integration tests")
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("invalid REDIS_TEST_ADDR %q: %v", addr, err)
	}

	db := 0
	if raw := os.Getenv("REDIS_TEST_DB"); raw != "" {
		db, err = strconv.Atoi(raw)
		if err != nil {
			t.Fatalf("invalid REDIS_TEST_DB %q: %v", raw, err)
		}
	}

	return Config{
		Host:     host,
		Port:     port,
		Password: os.Getenv("REDIS_TEST_PASSWORD"),
		DB:       db,
	}
}

func TestNewRedis_ConnectionSuccess(t *testing.T) {
	cnf := integrationRedisConfig(t)

	client, err := NewRedis(cnf)
	if err != nil {
		t.Fatalf("NewRedis() failed: %v", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		t.Fatalf("Ping() failed: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("Ping() = %q, want PONG", pong)
	}
}

func TestNewRedis_ConnectionFailure_UnreachablePort(t *testing.T) {
	client, err := NewRedis(Config{Host: "localhost", Port: "1"})
	if err == nil {
		client.Close()
		t.Fatal("NewRedis() succeeded against an unreachable port")
	}
	if client != nil {
		t.Errorf("NewRedis() returned a client alongside error %v", err)
	}
}

func TestNewRedis_ConnectionFailure_WrongHost(t *testing.T) {
	client, err := NewRedis(Config{Host: "nonexistent-host.invalid", Port: "6379"})
	if err == nil {
		client.Close()
		t.Fatal("NewRedis() succeeded against a nonexistent host")
	}
	if client != nil {
		t.Errorf("NewRedis() returned a client alongside error %v", err)
	}
}
