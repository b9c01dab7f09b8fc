package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("instance already running")

// InstanceGuard holds the single-instance lock: a listener on a localhost
// port derived from the app name. Connections from later instances are
// treated as activation requests.
type InstanceGuard struct {
	listener net.Listener
	address  string

	mu         sync.Mutex
	onActivate func()
	done       chan struct{}
}

// AcquireSingleInstance binds the app's port or returns ErrAlreadyRunning.
func AcquireSingleInstance(appName string) (*InstanceGuard, error) {
	address := instanceAddress(appName)
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("%w (%s): %v", ErrAlreadyRunning, address, err)
	}
	guard := &InstanceGuard{listener: listener, address: address, done: make(chan struct{})}
	go guard.acceptLoop()
	return guard, nil
}

// ActivateRunning asks the running instance to show itself.
func ActivateRunning(appName string) error {
	conn, err := net.DialTimeout("tcp", instanceAddress(appName), time.Second)
	if err != nil {
		return fmt.Errorf("contact running instance: %w", err)
	}
	return conn.Close()
}

// OnActivate sets the callback run for each activation request.
func (guard *InstanceGuard) OnActivate(fn func()) {
	guard.mu.Lock()
	guard.onActivate = fn
	guard.mu.Unlock()
}

// Release frees the single instance lock.
func (guard *InstanceGuard) Release() error {
	if guard == nil || guard.listener == nil {
		return nil
	}
	err := guard.listener.Close()
	<-guard.done
	return err
}

// Address returns the bound address.
func (guard *InstanceGuard) Address() string {
	if guard == nil {
		return ""
	}
	return guard.address
}

func (guard *InstanceGuard) acceptLoop() {
	defer close(guard.done)
	for {
		conn, err := guard.listener.Accept()
		if err != nil {
			if !errors.Is(err, net.ErrClosed) {
				slog.Debug("Single-instance listener stopped", slog.String("error", err.Error()))
			}
			return
		}
		_ = conn.Close()

		guard.mu.Lock()
		fn := guard.onActivate
		guard.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
}

func instanceAddress(appName string) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(portFromName(appName)))
}

func portFromName(appName string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	hash := fnv.New32a()
	_, _ = hash.Write([]byte(appName))
	rangeSize := maxPort - minPort + 1
	return minPort + int(hash.Sum32()%uint32(rangeSize))
}
