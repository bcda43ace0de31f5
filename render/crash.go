package render

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
)

var crashScreen atomic.Pointer[tcell.Screen]

// RegisterCrashScreen records the screen to finalize if a goroutine panics
func RegisterCrashScreen(s tcell.Screen) {
	if s == nil {
		crashScreen.Store(nil)
		return
	}
	crashScreen.Store(&s)
}

// HandleCrash restores the terminal, prints the panic with its stack and exits
func HandleCrash(r any) {
	if r == nil {
		return
	}
	if s := crashScreen.Swap(nil); s != nil {
		(*s).Fini()
	}
	fmt.Fprintf(os.Stderr, "\n\x1b[31mCRASH: %v\x1b[0m\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Exit(1)
}

// Recover is deferred at the top of every goroutine that touches the screen
func Recover() {
	if r := recover(); r != nil {
		HandleCrash(r)
	}
}
