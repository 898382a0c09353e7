// token 为编辑签发访问Token
//
//	go run ./cmd/token -editor alice
//	curl -H "Authorization: Bearer $(go run ./cmd/token -editor alice)" ...
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/pkg/jwt"
)

func main() {
	editor := flag.String("editor", "editor", "编辑名称(写入Token的editor字段)")
	configFile := flag.String("config", "", "配置文件路径,不指定时按默认规则查找")
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	manager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire, cfg.JWT.Issuer)
	token, err := manager.GenerateToken(*editor)
	if err != nil {
		log.Fatalf("签发Token失败: %v", err)
	}

	fmt.Println(token.AccessToken)
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFile(path)
}
