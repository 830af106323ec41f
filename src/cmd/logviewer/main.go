// Command logviewer follows the DailyFocus log files and prints their JSON
// records in a compact colored form. Typing narrows the output to records
// containing the typed text.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/eiannone/keyboard"

	"dailyfocus/local-app/src/pkg/config"
	"dailyfocus/local-app/src/pkg/log"
)

// viewer tails every *.log file of a directory.
type viewer struct {
	dir       string
	refresh   time.Duration
	threshold log.LogLevel

	mu         sync.RWMutex
	filter     string
	lastPrint  time.Time
	gapPrinted bool

	positions map[string]int64
	known     map[string]bool
}

func newViewer(dir string, refresh time.Duration, threshold log.LogLevel) *viewer {
	return &viewer{
		dir:       dir,
		refresh:   refresh,
		threshold: threshold,
		lastPrint: time.Now(),
		positions: map[string]int64{},
		known:     map[string]bool{},
	}
}

func printHelp() {
	fmt.Println("Usage: logviewer [log directory] [-c <config>] [-r <seconds>] [-l <level>] [-h|--help]")
	fmt.Println("\nOptions:")
	fmt.Println("  [log directory]      Directory with the log files (default: log_folder from the config)")
	fmt.Println("  -c, --config         DailyFocus config file (default: " + config.DefaultPath + ")")
	fmt.Println("  -r, --rate           Directory rescan interval in seconds (default: 1)")
	fmt.Println("  -l, --level          Lowest level shown: error, warn, info or debug (default: debug)")
	fmt.Println("  -h, --help           Show this help message")
	fmt.Println("\nType any character to add to the filter, backspace to remove the last character.")
	fmt.Println("Press Ctrl-C to exit.")
}

func (v *viewer) print(entry string) {
	fmt.Println(entry)
	v.mu.Lock()
	v.lastPrint = time.Now()
	v.gapPrinted = false
	v.mu.Unlock()
}

func (v *viewer) currentFilter() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.filter
}

// scan reads whatever was appended to each log file since the last pass.
func (v *viewer) scan() {
	logFiles, err := filepath.Glob(filepath.Join(v.dir, "*.log"))
	if err != nil {
		fmt.Printf("%sError reading log directory: %v%s\n", colorRed, err, colorReset)
		return
	}

	for _, path := range logFiles {
		if !v.known[path] {
			fmt.Printf("%sNew log file detected: %s%s\n", colorGreen, filepath.Base(path), colorReset)
			v.known[path] = true
		}
		v.tail(path)
	}
}

func (v *viewer) tail(path string) {
	name := filepath.Base(path)
	file, err := os.Open(path)
	if err != nil {
		fmt.Printf("%sError opening %s: %v%s\n", colorRed, name, err, colorReset)
		return
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		fmt.Printf("%sError getting file stats for %s: %v%s\n", colorRed, name, err, colorReset)
		return
	}
	if stat.Size() < v.positions[path] {
		fmt.Printf("%s%s has been truncated, starting from beginning%s\n", colorYellow, name, colorReset)
		v.positions[path] = 0
	}
	if _, err := file.Seek(v.positions[path], io.SeekStart); err != nil {
		fmt.Printf("%sError seeking in %s: %v%s\n", colorRed, name, err, colorReset)
		return
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			fmt.Printf("%sError parsing log entry in %s: %v%s\n", colorRed, name, err, colorReset)
			continue
		}
		level := entryLevel(entry, path)
		formatted := formatLogEntry(entry, level, true)
		if visible(formatted, level, v.threshold, v.currentFilter()) {
			v.print(formatted)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Printf("%sError reading %s: %v%s\n", colorRed, name, err, colorReset)
	}

	pos, err := file.Seek(0, io.SeekCurrent)
	if err != nil {
		fmt.Printf("%sError getting current position in %s: %v%s\n", colorRed, name, err, colorReset)
		return
	}
	v.positions[path] = pos
}

// monitor polls the files often and rescans the directory every refresh.
func (v *viewer) monitor() {
	rescan := time.Now()
	v.scan()
	for {
		time.Sleep(50 * time.Millisecond)
		if time.Since(rescan) >= v.refresh {
			v.scan()
			rescan = time.Now()
			continue
		}
		for path := range v.known {
			v.tail(path)
		}
	}
}

// markGaps prints a separator after a burst of records.
func (v *viewer) markGaps() {
	for {
		time.Sleep(50 * time.Millisecond)
		v.mu.Lock()
		if time.Since(v.lastPrint) > 100*time.Millisecond && !v.gapPrinted {
			fmt.Printf("%s◆%s\n", colorMagenta, colorReset)
			v.gapPrinted = true
		}
		v.mu.Unlock()
	}
}

func (v *viewer) handleKeyPress(done chan<- struct{}) {
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			fmt.Println("Error reading key:", err)
			done <- struct{}{}
			return
		}

		v.mu.Lock()
		switch key {
		case keyboard.KeyCtrlC, keyboard.KeyEsc:
			v.mu.Unlock()
			fmt.Println("\nExiting...")
			done <- struct{}{}
			return
		case keyboard.KeyBackspace, keyboard.KeyBackspace2:
			if len(v.filter) > 0 {
				v.filter = v.filter[:len(v.filter)-1]
			}
		case keyboard.KeySpace:
			v.filter += " "
		default:
			if char != 0 {
				v.filter += string(char)
			}
		}
		fmt.Printf("\rCurrent filter: %s", v.filter)
		v.mu.Unlock()
	}
}

func cleanup() {
	keyboard.Close()
	fmt.Print("\033[?25h")
}

// resolveDir picks the positional directory, else the configured log folder.
func resolveDir(args []string, configPath string) string {
	if len(args) > 0 {
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			return args[0]
		}
		fmt.Printf("WARNING: '%s' is not a valid directory, using the configured log folder\n", args[0])
	}
	if err := config.ConfigLoad(configPath); err != nil {
		fmt.Printf("WARNING: %v, using defaults\n", err)
	}
	return config.ConfigGet().LogFolder
}

func main() {
	var help bool
	var rate int
	var configPath, level string

	flag.IntVar(&rate, "r", 1, "Rescan interval in seconds")
	flag.IntVar(&rate, "rate", 1, "Rescan interval in seconds")
	flag.StringVar(&configPath, "c", config.DefaultPath, "Config file")
	flag.StringVar(&configPath, "config", config.DefaultPath, "Config file")
	flag.StringVar(&level, "l", "debug", "Lowest level shown")
	flag.StringVar(&level, "level", "debug", "Lowest level shown")
	flag.BoolVar(&help, "h", false, "Show help")
	flag.BoolVar(&help, "help", false, "Show help")
	flag.Parse()

	if help {
		printHelp()
		os.Exit(0)
	}
	if rate < 1 {
		rate = 1
	}

	dir := resolveDir(flag.Args(), configPath)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		fmt.Printf("Log directory '%s' does not exist. Please specify a valid directory.\n", dir)
		os.Exit(1)
	}

	v := newViewer(dir, time.Duration(rate)*time.Second, log.ParseLevel(level))
	fmt.Printf("Monitoring logs in directory: %s\n", dir)
	fmt.Printf("Showing %s and above\n", v.threshold)

	if err := keyboard.Open(); err != nil {
		fmt.Printf("Failed to open keyboard: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nExiting...")
		cleanup()
		os.Exit(0)
	}()

	go v.monitor()
	go v.markGaps()

	done := make(chan struct{})
	go v.handleKeyPress(done)

	fmt.Println("Start typing to filter logs. Press Ctrl-C to exit.")
	fmt.Print("Current filter: ")
	<-done
}
