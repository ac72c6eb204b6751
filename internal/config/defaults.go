package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.AllowedOrigins == nil {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/mitra/data/db/mitra.db"
	}
	if cfg.Storage.VectorIndexPath == "" {
		cfg.Storage.VectorIndexPath = "/usr/local/var/mitra/data/indices/embeddings.bin"
	}
	if cfg.Embedding.ModelPath == "" {
		cfg.Embedding.ModelPath = "/usr/local/var/mitra/data/models/all-MiniLM-L6-v2.onnx"
	}
	if cfg.Embedding.Dimensions == 0 {
		cfg.Embedding.Dimensions = 384
	}
	if cfg.Embedding.MaxTokens == 0 {
		cfg.Embedding.MaxTokens = 256
	}
	if cfg.Embedding.CacheSize == 0 {
		cfg.Embedding.CacheSize = 10000
	}
	if cfg.Resolver.SemanticThreshold == 0 {
		cfg.Resolver.SemanticThreshold = 0.65
	}
	if cfg.Resolver.FuzzyThreshold == 0 {
		cfg.Resolver.FuzzyThreshold = 0.70
	}
	if cfg.Resolver.KeywordThreshold == 0 {
		cfg.Resolver.KeywordThreshold = 0.3
	}
	if cfg.Resolver.EmbedTimeoutMS == 0 {
		cfg.Resolver.EmbedTimeoutMS = 2000
	}
	if cfg.Chat.DefaultPersonality == "" {
		cfg.Chat.DefaultPersonality = "compassionate_guardian"
	}
}
