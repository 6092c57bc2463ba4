package svc

import (
	"gorm.io/gorm"

	"github.com/ProjectsTask/TraitSigner/base/chain/chainclient"
	"github.com/ProjectsTask/TraitSigner/base/evm/attest"
	"github.com/ProjectsTask/TraitSigner/base/evm/stakebank"
	"github.com/ProjectsTask/TraitSigner/base/kit/auth"
	"github.com/ProjectsTask/TraitSigner/src/dao"
)

// CtxConfig 服务上下文配置构建器
// 用于使用 Option 模式构建 ServerCtx
type CtxConfig struct {
	db     *gorm.DB
	dao    dao.TraitStore
	chain  *chainclient.Client
	bank   stakebank.Reader
	signer *attest.Signer
	jwt    *auth.JWTManager
}

type CtxOption func(conf *CtxConfig)

// NewServerCtx 创建新的服务上下文
func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		DB:     c.db,
		Dao:    c.dao,
		Chain:  c.chain,
		Bank:   c.bank,
		Signer: c.signer,
		Jwt:    c.jwt,
	}
}

func WithDB(db *gorm.DB) CtxOption {
	return func(conf *CtxConfig) {
		conf.db = db
	}
}

func WithDao(dao dao.TraitStore) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = dao
	}
}

func WithChain(client *chainclient.Client) CtxOption {
	return func(conf *CtxConfig) {
		conf.chain = client
	}
}

func WithBank(bank stakebank.Reader) CtxOption {
	return func(conf *CtxConfig) {
		conf.bank = bank
	}
}

func WithSigner(signer *attest.Signer) CtxOption {
	return func(conf *CtxConfig) {
		conf.signer = signer
	}
}

func WithJWT(m *auth.JWTManager) CtxOption {
	return func(conf *CtxConfig) {
		conf.jwt = m
	}
}
