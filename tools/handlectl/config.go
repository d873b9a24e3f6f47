package main

import "os"
import "fmt"

import s "github.com/bnclabs/gosettings"
import "gopkg.in/yaml.v3"

// loadconfig read a YAML file into flat settings, nested mappings
// become dotted keys:
//
//	capacity: 256
//	malloc:
//	  allocator: mmap
//
// is {"capacity": 256, "malloc.allocator": "mmap"}.
func loadconfig(path string) (s.Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %q: %w", path, err)
	}
	return parseconfig(data)
}

func parseconfig(data []byte) (s.Settings, error) {
	doc := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	setts := make(s.Settings)
	if err := flatten("", doc, setts); err != nil {
		return nil, err
	}
	return setts, nil
}

func flatten(prefix string, doc map[string]interface{}, setts s.Settings) error {
	for key, value := range doc {
		switch val := value.(type) {
		case map[string]interface{}:
			if err := flatten(prefix+key+".", val, setts); err != nil {
				return err
			}
		case []interface{}:
			return fmt.Errorf("config: %q, lists are not supported", prefix+key)
		case int:
			setts[prefix+key] = int64(val)
		default:
			setts[prefix+key] = val
		}
	}
	return nil
}
