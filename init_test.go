package handles

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/golog"

func init() {
	setts := map[string]interface{}{
		"log.level":      "ignore",
		"log.colorfatal": "red",
		"log.colorerror": "hired",
		"log.colorwarn":  "yellow",
	}
	log.SetLogger(nil, setts)
	LogComponents("all")
}

func testsettings() s.Settings {
	return s.Settings{
		"assert":           "log",
		"malloc.allocator": "heap",
		"malloc.capacity":  int64(10 * 1024 * 1024),
	}
}
