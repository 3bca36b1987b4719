package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/wjam/findbugs-sonar-rules-plugin/internal/api"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/model"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/pipeline"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/reporting"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/security"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/shared"
	"github.com/wjam/findbugs-sonar-rules-plugin/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "generate":
		generateCmd(os.Args[2:])
	case "history":
		historyCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "user-add":
		userAddCmd(os.Args[2:])
	case "version":
		fmt.Println("fbsonar – FindBugs → Sonar rules generator:", model.Version)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `fbsonar – FindBugs → Sonar rules generator

Usage:
  fbsonar generate [--messages <file|classpath:…>] [--bugrank <file|classpath:…>] [--out rules.xml] [--encoding UTF-8] [--name-suffix s] [--db ./fbsonar.db] [--config ./configs/fbsonar.yaml]
  fbsonar history  [--db ./fbsonar.db] [--limit 20] [--config ./configs/fbsonar.yaml]
  fbsonar serve    [--addr :8080] [--db ./fbsonar.db] [--config ./configs/fbsonar.yaml]
  fbsonar user-add --username u --password p [--role viewer] [--db ./fbsonar.db]
  fbsonar version
`)
}

func generateCmd(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	messages := fs.String("messages", "", "Messages XML location (path or classpath:)")
	rank := fs.String("bugrank", "", "Bug rank file location (path or classpath:)")
	out := fs.String("out", "", "Output rules XML path")
	encName := fs.String("encoding", "", "Output character encoding (IANA name)")
	suffix := fs.String("name-suffix", "", "Suffix appended to every rule name")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *messages != "" {
		cfg.Inputs.Messages = *messages
	}
	if *rank != "" {
		cfg.Inputs.BugRank = *rank
	}
	if *out != "" {
		cfg.Output.Path = *out
	}
	if *encName != "" {
		cfg.Output.Encoding = *encName
	}
	if *suffix != "" {
		cfg.Output.NameSuffix = *suffix
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	if dir := filepath.Dir(cfg.Output.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintln(os.Stderr, "generate: cannot create output dir:", err)
			os.Exit(1)
		}
	}

	run, err := pipeline.Run(cfg)
	if err != nil {
		slog.Error("generate failed", "err", err)
		os.Exit(1)
	}
	run.ID = fmt.Sprintf("run-%d", time.Now().Unix())

	// Persist & report
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	if err := db.SaveRun(&run); err != nil {
		slog.Error("db save run error", "err", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(cfg.Reporting.OutDir, 0o755); err != nil {
		slog.Error("cannot create report dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(run.ID, cfg.Reporting.OutDir, &run)
	htmlPath, _ := reporting.WriteHTML(run.ID, cfg.Reporting.OutDir, &run)
	slog.Info("generate complete",
		"run", run.ID,
		"rules", len(run.Rules),
		"out", cfg.Output.Path,
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)
	fmt.Printf("Generate OK\n  Run: %s\n  Rules: %d\n  XML: %s\n  JSON: %s\n  HTML: %s\n  DB: %s\n",
		run.ID, len(run.Rules), cfg.Output.Path, jsonPath, htmlPath, filepath.Clean(*dbPath))
}

func historyCmd(args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	dbPath := fs.String("db", "", "SQLite database path")
	limit := fs.Int("limit", 20, "Maximum runs to list")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	rows, err := db.ListRuns(*limit, 0)
	if err != nil {
		slog.Error("list runs error", "err", err)
		os.Exit(1)
	}
	if len(rows) == 0 {
		fmt.Println("No runs recorded.")
		return
	}
	for _, rr := range rows {
		fmt.Printf("%s  %s  rules=%d  %s (%s)\n",
			rr.ID, rr.StartedAt.Format(time.RFC3339), rr.Rules, rr.OutputPath, rr.Encoding)
	}
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", "", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *addr == "" {
		*addr = cfg.Server.Addr
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		SessionDuration: time.Duration(cfg.Server.SessionTTLh) * time.Hour,
	}
	slog.Info("serving", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func userAddCmd(args []string) {
	fs := flag.NewFlagSet("user-add", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	role := fs.String("role", "viewer", "Role (viewer|admin)")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "user-add: --username and --password are required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	hash, err := security.HashPassword(*password)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, *username, *role)
}
