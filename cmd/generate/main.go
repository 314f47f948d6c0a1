package main

import (
	"flag"
	"fmt"
	"os"

	config "github.com/ledger-calendar-bot/assistant/config"
	"github.com/ledger-calendar-bot/assistant/internal/envgen"
	"github.com/ledger-calendar-bot/assistant/internal/kubegen"
	"github.com/ledger-calendar-bot/assistant/internal/mdgen"
	"github.com/ledger-calendar-bot/assistant/internal/settings"
)

var (
	output string
	_type  string
	name   string
)

func init() {
	flag.StringVar(&output, "output", "", "Path to the output file")
	flag.StringVar(&_type, "type", "", "The type of the file to generate (Env, ConfigMap, Secret, or MD)")
	flag.StringVar(&name, "name", "ledger-calendar-assistant", "Name and namespace of the Kubernetes resources")
}

func main() {
	flag.Parse()

	if output == "" || _type == "" {
		fmt.Println("Both -output and -type must be specified")
		os.Exit(1)
	}

	sections := settings.FromConfig(config.Config{})

	var err error
	switch _type {
	case "Env":
		err = envgen.GenerateEnvExample(output, sections)
	case "ConfigMap":
		err = kubegen.GenerateConfigMap(output, name, sections)
	case "Secret":
		err = kubegen.GenerateSecret(output, name, sections)
	case "MD":
		err = mdgen.GenerateConfigurationsMD(output, sections)
	default:
		fmt.Println("Invalid type specified")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Error generating %s: %v\n", output, err)
		os.Exit(1)
	}
}
