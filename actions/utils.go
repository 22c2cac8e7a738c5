package actions

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/suncar/seeder/utils"
)

var stopFlag int32
var signalsOnce sync.Once

func HandleSignals() {
	signalsOnce.Do(func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-c
			fmt.Println("\n[signal] Received interrupt, stopping after the current step...")
			atomic.StoreInt32(&stopFlag, 1)
		}()
	})
}

func interrupted() bool {
	return atomic.LoadInt32(&stopFlag) != 0
}

func PromptString(prompt string) string {
	if interrupted() {
		fmt.Println("\n[info] Interrupt received, exiting prompt.")
		os.Exit(130)
	}
	fmt.Print(prompt)
	var val string
	_, _ = fmt.Scanln(&val)
	return strings.TrimSpace(val)
}

func PromptBool(prompt string, def bool) bool {
	return parseBool(PromptString(prompt), def)
}

func parseBool(val string, def bool) bool {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return def
	}
	if val == "y" || val == "yes" || val == "1" || val == "true" {
		return true
	}
	if val == "n" || val == "no" || val == "0" || val == "false" {
		return false
	}
	fmt.Println("[warn] Invalid boolean input, using default.")
	return def
}

func WasFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// reportSource prints where a setting came from, flag or default.
func reportSource(name string, value interface{}) {
	if WasFlagPassed(name) {
		fmt.Printf("[info] using flag -%s=%v\n", name, value)
	} else {
		fmt.Printf("[info] using default -%s=%v\n", name, value)
	}
}

// connectionSource names the flag that decides the MongoDB target and its
// printable value, password masked.
func connectionSource(uri string, host string, port string) (string, string) {
	if uri == "" && host != "" {
		if port != "" {
			return "mongodb-host", host + ":" + port
		}
		return "mongodb-host", host
	}
	return "mongodb-uri", utils.RedactURI(uri)
}

func reportConnection(uri string, host string, port string) {
	name, value := connectionSource(uri, host, port)
	reportSource(name, value)
}
