// Генератор JSON-схемы сетевого протокола. Схема скармливается
// клиентским репозиториям, чтобы их кодеки проверялись против той же
// формы кадров, которую собирает сервер.
//
//	go run ./tools/schemagen -out docs/protocol.schema.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/invopop/jsonschema"

	"erebus-server/pkg/api"
)

func main() {
	var outPath string
	flag.StringVar(&outPath, "out", "", "path to write the JSON schema")
	flag.Parse()

	if outPath == "" {
		fmt.Fprintln(os.Stderr, "--out is required")
		os.Exit(1)
	}

	schema := buildSchema()

	if err := writeSchema(outPath, schema); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write schema: %v\n", err)
		os.Exit(1)
	}
}

func buildSchema() *jsonschema.Schema {
	// Без $ref: каждое сообщение описано целиком, чтобы фрагменты
	// схемы можно было копировать в клиентские валидаторы по одному.
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}

	command := reflector.Reflect(new(api.ClientCommand))
	command.Version = ""
	command.Title = "Client Command"
	command.Description = "Single action sent by the client over the websocket."

	response := reflector.Reflect(new(api.ServerResponse))
	response.Version = ""
	response.Title = "Server Frame"
	response.Description = "STATE, TERMINAL, INFO or ERROR frame pushed by the server."

	root := &jsonschema.Schema{
		Version:     jsonschema.Version,
		Title:       "Erebus Station Wire Protocol",
		Description: "Messages exchanged between the expedition client and the simulation server.",
		OneOf: []*jsonschema.Schema{
			command,
			response,
		},
	}

	// Полезные нагрузки команд идут по проводу как сырой JSON, рефлексия
	// их не увидит. Публикуем формы отдельно.
	root.Definitions = jsonschema.Definitions{
		"InitPayload":   reflector.Reflect(new(api.InitPayload)),
		"MovePayload":   reflector.Reflect(new(api.MovePayload)),
		"UsePayload":    reflector.Reflect(new(api.UsePayload)),
		"TravelPayload": reflector.Reflect(new(api.TravelPayload)),
		"CheatPayload":  reflector.Reflect(new(api.CheatPayload)),
	}
	for _, def := range root.Definitions {
		def.Version = ""
	}

	return root
}

func writeSchema(outPath string, schema *jsonschema.Schema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create schema directory: %w", err)
	}

	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp schema: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}

	return nil
}
