package display

import (
	"github.com/godbus/dbus/v5"
)

const (
	logindDest    = "org.freedesktop.login1"
	sessionPath   = "/org/freedesktop/login1/session/auto"
	setBrightness = "org.freedesktop.login1.Session.SetBrightness"
)

// LogindClient is the real implementation using godbus on the system bus
type LogindClient struct {
	conn *dbus.Conn
}

// NewLogindClient connects to the system bus
func NewLogindClient() (*LogindClient, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	return &LogindClient{conn: conn}, nil
}

// SetBrightness sets the brightness of a device in the caller's session
func (c *LogindClient) SetBrightness(subsystem, name string, level uint32) error {
	obj := c.conn.Object(logindDest, dbus.ObjectPath(sessionPath))
	return obj.Call(setBrightness, 0, subsystem, name, level).Err
}

// Close closes the bus connection
func (c *LogindClient) Close() error {
	return c.conn.Close()
}
