package svc

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ProjectsTask/TraitSigner/base/chain/chainclient"
	"github.com/ProjectsTask/TraitSigner/base/evm/attest"
	"github.com/ProjectsTask/TraitSigner/base/evm/stakebank"
	"github.com/ProjectsTask/TraitSigner/base/kit/auth"
	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
	"github.com/ProjectsTask/TraitSigner/base/stores/gdb"
	"github.com/ProjectsTask/TraitSigner/src/common/utils"
	"github.com/ProjectsTask/TraitSigner/src/config"
	"github.com/ProjectsTask/TraitSigner/src/dao"
)

type ServerCtx struct {
	C      *config.Config
	DB     *gorm.DB
	Dao    dao.TraitStore
	Chain  *chainclient.Client // 进程内唯一的节点连接
	Bank   stakebank.Reader    // 质押合约只读调用, 每次请求实时读取
	Signer *attest.Signer      // 持有授权私钥的签名器
	Jwt    *auth.JWTManager
}

// 启动阶段依赖的外部连接, 测试中替换
var (
	openDB    = gdb.NewDB
	dialChain = chainclient.New
)

// NewServiceContext 初始化服务上下文
// 该函数负责初始化后端服务所需的所有基础设施组件, 中途失败时释放已建立的连接
func NewServiceContext(c *config.Config) (_ *ServerCtx, err error) {
	// 1. 初始化日志系统 (Zap Logger)
	if _, err := xzap.SetUp(c.Log); err != nil {
		return nil, err
	}

	// 2. 初始化数据库连接 (GORM) 并建表
	db, err := openDB(&c.DB)
	if err != nil {
		return nil, err
	}
	var client *chainclient.Client
	defer func() {
		if err == nil {
			return
		}
		if client != nil {
			client.Close()
		}
		closeDB(db)
	}()

	store := dao.New(context.Background(), db)
	if c.DB.AutoMigrate {
		if err = store.AutoMigrate(context.Background()); err != nil {
			return nil, err
		}
	}

	// 3. 连接节点, 仅启动阶段重试
	if err = utils.Retry(context.Background(), "dial chain", c.Chain.DialAttempts,
		time.Duration(c.Chain.DialInterval)*time.Second, func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			var dialErr error
			client, dialErr = dialChain(ctx, c.Chain.JsonRPC, c.Chain.ChainID)
			return dialErr
		}); err != nil {
		return nil, errors.Wrap(err, "failed on connect chain node")
	}

	// 4. 绑定质押合约
	bank, err := stakebank.New(common.HexToAddress(c.Contract.BankAddress), client)
	if err != nil {
		return nil, err
	}

	// 5. 加载授权私钥
	signer, err := attest.NewSigner(c.Auth.PrivateKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed on load authority key")
	}
	checkSignerAddress(bank, signer)

	serverCtx := NewServerCtx(
		WithDB(db),
		WithDao(store),
		WithChain(client),
		WithBank(bank),
		WithSigner(signer),
		WithJWT(auth.NewJWTManager(c.Auth.JwtSecret, c.Auth.JwtIssuer, time.Duration(c.Auth.TokenTTL)*time.Hour)),
	)
	serverCtx.C = c

	return serverCtx, nil
}

// checkSignerAddress 合约登记的签名地址与本地私钥不一致时, 合约将拒绝本服务签发的签名
func checkSignerAddress(bank stakebank.Reader, signer *attest.Signer) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	onchain, err := bank.SignerAddress(ctx)
	if err != nil {
		xzap.WithContext(ctx).Warn("failed on query contract signer address", zap.Error(err))
		return
	}
	if onchain != signer.Address() {
		xzap.WithContext(ctx).Warn("authority key does not match contract signer",
			zap.String("contract_signer", onchain.Hex()),
			zap.String("local_signer", signer.Address().Hex()))
		return
	}
	xzap.WithContext(ctx).Info("authority key matches contract signer",
		zap.String("signer", signer.Address().Hex()))
}

// Close 释放节点连接与数据库连接池
func (s *ServerCtx) Close() {
	if s.Chain != nil {
		s.Chain.Close()
	}
	closeDB(s.DB)
}

func closeDB(db *gorm.DB) {
	if db == nil {
		return
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
