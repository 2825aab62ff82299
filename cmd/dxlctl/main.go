// Command dxlctl is a thin demonstration harness around package dxl: it
// opens one serial bus per invocation, issues a single command, prints the
// result, and exits. It is not part of the driver library — the library
// itself takes no CLI input, reads no environment variables, and persists
// no state.
package main

import (
	"fmt"
	"os"
	"strconv"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/pflag"

	"dynamixel/config"
	"dynamixel/dxl"
	"dynamixel/transport/serialport"
)

// logAdapter satisfies dxl.Logger over a charmbracelet/log.Logger, the
// structured logger already present in this corpus.
type logAdapter struct{ l *charmlog.Logger }

func (a logAdapter) Debugw(msg string, keyvals ...interface{}) { a.l.Debug(msg, keyvals...) }
func (a logAdapter) Warnw(msg string, keyvals ...interface{})  { a.l.Warn(msg, keyvals...) }

func main() {
	configPath := pflag.StringP("config", "c", "profile.yaml", "Path to the device profile YAML file")
	verbose := pflag.BoolP("verbose", "v", false, "Log every transaction at debug level")
	help := pflag.BoolP("help", "h", false, "Display usage")
	pflag.Parse()

	logger := charmlog.New(os.Stderr)
	if *verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}

	args := pflag.Args()
	if *help || len(args) < 2 {
		usage()
		if *help {
			os.Exit(0)
		}
		os.Exit(2)
	}

	profile, err := config.Load(*configPath)
	if err != nil {
		logger.Fatal("loading profile", "err", err)
	}

	port, err := serialport.Open(profile.Port, profile.BaudRate)
	if err != nil {
		logger.Fatal("opening port", "err", err)
	}
	defer port.Close()

	driver := dxl.NewDriver(port, port, profile.BaudRate)
	driver.SetLogger(logAdapter{logger})

	if err := run(driver, args); err != nil {
		logger.Fatal("command failed", "err", err)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: dxlctl [flags] <command> <id> [args...]")
	fmt.Fprintln(os.Stderr, "commands:")
	fmt.Fprintln(os.Stderr, "  ping <id>")
	fmt.Fprintln(os.Stderr, "  read <id> <address> <width>")
	fmt.Fprintln(os.Stderr, "  write <id> <address> <value> <width>")
	fmt.Fprintln(os.Stderr, "  reboot <id>")
	fmt.Fprintln(os.Stderr, "  factory-reset <id>")
	fmt.Fprintln(os.Stderr, "  sync-read <id> [id...]  (reads Present-Position)")
	fmt.Fprintln(os.Stderr, "flags:")
	pflag.PrintDefaults()
}

func run(driver *dxl.Driver, args []string) error {
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "ping":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		model, firmware, perr := driver.Ping(id)
		if perr != nil {
			return perr
		}
		fmt.Printf("model=%#04x firmware=%#02x\n", model, firmware)

	case "read":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		address, err := parseUint16(rest, 1)
		if err != nil {
			return err
		}
		width, err := parseUint16(rest, 2)
		if err != nil {
			return err
		}
		data, rerr := driver.Read(id, address, width)
		if rerr != nil {
			return rerr
		}
		fmt.Printf("% X\n", data)

	case "write":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		address, err := parseUint16(rest, 1)
		if err != nil {
			return err
		}
		value, err := parseUint32(rest, 2)
		if err != nil {
			return err
		}
		width, err := parseUint16(rest, 3)
		if err != nil {
			return err
		}
		data := make([]byte, width)
		for i := range data {
			data[i] = byte(value >> (8 * uint(i)))
		}
		if werr := driver.Write(id, address, data); werr != nil {
			return werr
		}
		fmt.Println("ok")

	case "reboot":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		if rerr := driver.Reboot(id); rerr != nil {
			return rerr
		}
		fmt.Println("ok")

	case "factory-reset":
		id, err := parseID(rest, 0)
		if err != nil {
			return err
		}
		if rerr := driver.FactoryReset(id); rerr != nil {
			return rerr
		}
		fmt.Println("ok")

	case "sync-read":
		// Demo harness only reads Present-Position in bulk; the library's
		// SyncRead takes any dxl.Name, this command just doesn't expose
		// the choice as a flag.
		if len(rest) < 1 {
			return fmt.Errorf("sync-read requires <id> [id...]")
		}
		ids := make([]byte, 0, len(rest))
		for _, s := range rest {
			id, err := strconv.ParseUint(s, 10, 8)
			if err != nil {
				return fmt.Errorf("invalid id %q: %w", s, err)
			}
			ids = append(ids, byte(id))
		}
		results, serr := driver.SyncRead(ids, dxl.PresentPosition)
		if serr != nil {
			return serr
		}
		for _, r := range results {
			if r.Err != nil {
				fmt.Printf("id=%d error=%v\n", r.ID, r.Err)
				continue
			}
			fmt.Printf("id=%d data=% X\n", r.ID, r.Data)
		}

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func parseID(args []string, i int) (byte, error) {
	v, err := parseUint16(args, i)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

func parseUint16(args []string, i int) (uint16, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	v, err := strconv.ParseUint(args[i], 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid argument %q: %w", args[i], err)
	}
	return uint16(v), nil
}

func parseUint32(args []string, i int) (uint32, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument %d", i)
	}
	v, err := strconv.ParseUint(args[i], 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid argument %q: %w", args[i], err)
	}
	return uint32(v), nil
}
