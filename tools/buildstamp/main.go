package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"erebus-server/internal/version"
)

const versionPkg = "erebus-server/internal/version"

func main() {
	if len(os.Args) < 2 {
		printHelp()
		return
	}

	switch os.Args[1] {
	case "date":
		fmt.Println(time.Now().UTC().Format("2006-01-02"))
	case "id":
		if len(os.Args) < 3 {
			fmt.Println("Usage: buildstamp id <YYYY-MM-DD>")
			return
		}
		// Эпоха живет в пакете version, здесь ее не дублируем.
		id, err := version.BuildIDFor(os.Args[2])
		if err != nil {
			fmt.Printf("Invalid date: %v\n", err)
			return
		}
		fmt.Println(id)
	case "ldflags":
		fmt.Println(ldflags(os.Args[2:]))
	default:
		printHelp()
	}
}

// ldflags собирает строку для go build. Позиционные аргументы: коммит,
// ветка, имя CI. Пустые хвосты просто не попадают в строку.
func ldflags(args []string) string {
	parts := []string{
		fmt.Sprintf("-X %s.BuildDate=%s", versionPkg, time.Now().UTC().Format("2006-01-02")),
	}

	names := []string{"BuildCommit", "BuildBranch", "BuildCI"}
	for i, name := range names {
		if i < len(args) && args[i] != "" {
			parts = append(parts, fmt.Sprintf("-X %s.%s=%s", versionPkg, name, args[i]))
		}
	}

	return strings.Join(parts, " ")
}

func printHelp() {
	fmt.Println(`Build Stamp - метаданные сборки для internal/version
Commands:
  date                       - сегодняшняя дата UTC в формате BuildDate
  id <YYYY-MM-DD>            - номер сборки для даты (дни от эпохи)
  ldflags [commit] [branch] [ci] - готовая строка для go build -ldflags`)
}
