package db

import (
	"fmt"
)

func DBConfigFromYamlObj(yamlObj DBConfigYaml) DBConfig {
	URI := fmt.Sprintf(`mongodb%s://%s:%s@%s`, yamlObj.ConnectionPrefix, yamlObj.Username, yamlObj.Password, yamlObj.ConnectionStr)
	if yamlObj.Username == "" && yamlObj.Password == "" {
		// local dev setups often run without auth
		URI = fmt.Sprintf(`mongodb%s://%s`, yamlObj.ConnectionPrefix, yamlObj.ConnectionStr)
	}

	return DBConfig{
		URI:             URI,
		Timeout:         yamlObj.Timeout,
		IdleConnTimeout: yamlObj.IdleConnTimeout,
		MaxPoolSize:     uint64(yamlObj.MaxPoolSize),
		NoCursorTimeout: yamlObj.UseNoCursorTimeout,
		DBNamePrefix:    yamlObj.DBNamePrefix,
	}
}
