package config

type Config struct {
	Search struct {
		OriginURL       string `json:"origin_url"`
		MinYear         int    `json:"min_year"`
		CityFilter      string `json:"city_filter"`
		Workers         int    `json:"workers"`
		MaxListings     int    `json:"max_listings"`
		MaxPages        int    `json:"max_pages"`
		StaticTraversal bool   `json:"static_traversal"`
		PathPattern     string `json:"path_pattern"`
		DelayMinMs      int    `json:"delay_min_ms"`
		DelayMaxMs      int    `json:"delay_max_ms"`
		ScrollSteps     int    `json:"scroll_steps"`
		ShowMoreRounds  int    `json:"show_more_rounds"`
		NextWaitSeconds int    `json:"next_wait_seconds"`
	} `json:"search"`

	Output struct {
		ResultCSV string `json:"result_csv"`
		AuditCSV  string `json:"audit_csv"`
	} `json:"output"`

	Browser struct {
		Engine             string `json:"engine"`
		PageLoadTimeoutSec int    `json:"page_load_timeout_sec"`
		BlockImages        bool   `json:"block_images"`

		Rod struct {
			Headless             bool   `json:"headless"`
			DisableBlinkFeatures string `json:"disable_blink_features"`
			Incognito            bool   `json:"incognito"`
			DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
			NoSandbox            bool   `json:"no_sandbox"`
			UserAgent            string `json:"user_agent"`
			Leakless             bool   `json:"leakless"`
			Bin                  string `json:"bin"`
		} `json:"rod"`

		Chromedp struct {
			UserDataDir          string `json:"user_data_dir"`
			Headless             bool   `json:"headless"`
			DisableBlinkFeatures string `json:"disable_blink_features"`
			Incognito            bool   `json:"incognito"`
			DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
			NoSandbox            bool   `json:"no_sandbox"`
			UserAgent            string `json:"user_agent"`
		} `json:"chromedp"`
	} `json:"browser"`

	Colly struct {
		AllowedDomains  []string `json:"allowed_domains"`
		MaxDepth        int      `json:"max_depth"`
		UserAgent       string   `json:"user_agent"`
		IgnoreRobotsTxt bool     `json:"ignore_robots_txt"`
		Delay           int      `json:"delay"`
		RandomDelay     int      `json:"random_delay"`
	} `json:"colly"`

	Elasticsearch struct {
		Enabled  bool   `json:"enabled"`
		Username string `json:"username"`
		Password string `json:"password"`
		Address  string `json:"address"`
	} `json:"elasticsearch"`

	Embedder struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Model     string `json:"model"`
		BatchSize int    `json:"batch_size"`
	} `json:"embedder"`
}
