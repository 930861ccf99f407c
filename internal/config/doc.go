// Package config provides local-first configuration for slides.
//
// All state lives in the project's .slides/ directory:
//
//	.slides/
//	├── config.toml   # settings (committed to git)
//	├── .gitignore    # ignores the index and logs
//	├── media.db      # SQLite image index
//	└── slides.log    # runtime log
//
// A config.toml looks like:
//
//	index_path = ".slides/media.db"
//	media_roots = ["${HOME}/Pictures", "/mnt/camera"]
//	delay = "1s"
//	decode_failure = "skip"   # or "abort"
//	run_policy = "replace"    # "allow", "replace" or "reject"
//	auto_grant = ["read_images"]
//	log_level = "info"
//
// Paths may reference environment variables with $VAR or ${VAR}. They are
// expanded when loaded, never when saved.
//
// Example usage:
//
//	manager := config.NewManager("/path/to/project")
//	if err := manager.Load(); err != nil {
//		log.Fatal(err)
//	}
//	cfg := manager.Get()
//	fmt.Println("delay:", cfg.Delay)
package config
