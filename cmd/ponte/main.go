package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"k8s.io/klog/v2"

	"github.com/renato0307/ponte/internal/app"
	"github.com/renato0307/ponte/internal/engine"
	"github.com/renato0307/ponte/internal/k8s"
	"github.com/renato0307/ponte/internal/logging"
	"github.com/renato0307/ponte/internal/ui"
)

func main() {
	// Suppress klog output from client-go; anything written to stderr would
	// corrupt the TUI
	klog.InitFlags(nil)
	flag.Set("logtostderr", "false")
	flag.Set("stderrthreshold", "FATAL")
	flag.Set("v", "0")

	kubeconfigFlag := flag.String("kubeconfig", "", "Path to kubeconfig file (default: $KUBECONFIG, then $HOME/.kube/config)")
	contextFlag := flag.String("context", "", "Kubernetes context to use (default: kubeconfig current context)")
	namespaceFlag := flag.String("namespace", "", "Namespace to show at startup (default: all namespaces)")
	themeFlag := flag.String("theme", "charm", "Theme to use (charm, dracula, nord, gruvbox)")
	logFileFlag := flag.String("log-file", "", "Log file path (empty disables logging)")
	logLevelFlag := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFormatFlag := flag.String("log-format", "text", "Log format (text, json)")
	flag.Parse()
	defer klog.Flush()

	logging.Init(logging.Config{
		FilePath:   *logFileFlag,
		Level:      logging.ParseLevel(*logLevelFlag),
		Format:     logging.ParseFormat(*logFormatFlag),
		MaxSizeMB:  10,
		MaxBackups: 3,
	})

	theme := ui.GetTheme(*themeFlag)

	session := k8s.NewSession(*kubeconfigFlag)
	if *contextFlag != "" {
		session.OverrideContext(*contextFlag)
	}

	eng := engine.New(session, engine.NewBus())
	if *namespaceFlag != "" {
		eng.SelectNamespace(*namespaceFlag)
	}

	model := app.NewModel(session, eng, theme)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
}
