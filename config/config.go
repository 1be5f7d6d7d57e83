package config

import (
	"os"
	"path"

	"github.com/abcfe/abcfe-wallet/common/utils"
	"github.com/kelseyhightower/envconfig"
	"github.com/naoina/toml"
	"github.com/pkg/errors"
)

// envPrefix 환경변수 오버라이드 접두사 (WALLETS_STORE_DRIVER 등)
// 키는 섹션과 필드 이름에서 만들어지며 접두사 없는 변수는 읽지 않음
const envPrefix = "WALLETS"

type Common struct {
	Level       string // local, dev, prod
	ServiceName string `split_words:"true"`
}

type LogInfo struct {
	Path       string
	MaxAgeHour int `split_words:"true"`
	RotateHour int `split_words:"true"`
}

type DB struct {
	Path string
}

// Store 지갑 목록 저장소 설정
type Store struct {
	Driver     string // leveldb, sqlite
	SQLitePath string // WALLETS_STORE_SQLITEPATH
}

// Generator 주소 생성 설정
type Generator struct {
	Network        string // abcfe, solana
	TimeoutSeconds int    `split_words:"true"`
}

type KeyStore struct {
	Passphrase string
	ScryptN    int `split_words:"true"`
}

type Server struct {
	RestPort int `toml:"RestPort" split_words:"true"`
}

type Config struct {
	Common    Common
	LogInfo   LogInfo
	DB        DB
	Store     Store
	Generator Generator
	KeyStore  KeyStore
	Server    Server
}

const (
	StoreDriverLevelDB = "leveldb"
	StoreDriverSQLite  = "sqlite"

	NetworkAbcfe  = "abcfe"
	NetworkSolana = "solana"
)

func NewConfig(filepath string) (*Config, error) {
	if filepath == "" {
		workDir, _ := os.Getwd()
		rootDir := utils.FindProjectRoot(workDir)
		filepath = path.Join(rootDir, "config", "config.toml")
	}

	file, err := os.Open(filepath)
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()

	c := new(Config)
	if err := toml.NewDecoder(file).Decode(c); err != nil {
		return nil, errors.Wrapf(err, "decode config %s", filepath)
	}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, errors.Wrap(err, "apply environment overrides")
	}
	if err := c.sanitize(); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *Config) sanitize() error {
	for _, s := range []*string{&p.LogInfo.Path, &p.DB.Path, &p.Store.SQLitePath} {
		expanded, err := utils.ExpandPath(*s)
		if err != nil {
			return errors.Wrapf(err, "expand path %q", *s)
		}
		*s = expanded
	}

	if p.Store.Driver == "" {
		p.Store.Driver = StoreDriverLevelDB
	}
	if p.Generator.Network == "" {
		p.Generator.Network = NetworkAbcfe
	}
	if p.Generator.TimeoutSeconds <= 0 {
		p.Generator.TimeoutSeconds = 30
	}
	if p.KeyStore.ScryptN <= 0 {
		p.KeyStore.ScryptN = 1 << 15
	}

	switch p.Store.Driver {
	case StoreDriverLevelDB, StoreDriverSQLite:
	default:
		return errors.Errorf("unknown store driver %q", p.Store.Driver)
	}
	switch p.Generator.Network {
	case NetworkAbcfe, NetworkSolana:
	default:
		return errors.Errorf("unknown generator network %q", p.Generator.Network)
	}
	return nil
}

func (p *Config) GetLogInfoConfig() *LogInfo {
	return &p.LogInfo
}
