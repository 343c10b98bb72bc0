package ops

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/shopspring/decimal"

	"github.com/starchild/orderlybot/orderly/signing"
	"github.com/starchild/orderlybot/orderly/types"
	"github.com/starchild/orderlybot/pkg/config"
	"github.com/starchild/orderlybot/pkg/keyvault"
)

const testWallet = "0x036Cb579025d3535a0ADcD929D05481a3189714b"

// fakeWallet signs nothing for real; flows only need a stable address
// and some signature string.
type fakeWallet struct {
	signErr error
	signed  []apitypes.TypedData
}

func (f *fakeWallet) Address(ctx context.Context) (string, error) { return testWallet, nil }

func (f *fakeWallet) SignTypedData(ctx context.Context, td apitypes.TypedData) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.signed = append(f.signed, td)
	return "0xsigned", nil
}

// memVault is an in-memory keyvault.Vault.
type memVault struct {
	keys    map[string]*keyvault.StoredKey
	saveErr error
}

func newMemVault() *memVault { return &memVault{keys: map[string]*keyvault.StoredKey{}} }

func (m *memVault) Save(ctx context.Context, walletID, publicKey, privateKeyHex string) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.keys[walletID] = &keyvault.StoredKey{
		WalletID: walletID, PublicKey: publicKey, PrivateKeyHex: privateKeyHex,
	}
	return nil
}

func (m *memVault) Load(ctx context.Context, walletID string) (*keyvault.StoredKey, error) {
	rec, ok := m.keys[walletID]
	if !ok {
		return nil, keyvault.ErrNotFound
	}
	return rec, nil
}

func (m *memVault) Delete(ctx context.Context, walletID string) (bool, error) {
	_, ok := m.keys[walletID]
	delete(m.keys, walletID)
	return ok, nil
}

func (m *memVault) Close() error { return nil }

// fakeExchange scripts the Exchange interface.
type fakeExchange struct {
	registrationNonce int64
	withdrawNonce     int64
	settleNonce       int64
	nonceErr          error

	registered []types.RegisterAccountRequest
	addedKeys  []types.AddKeyRequest
	addKeyErr  error

	orderPages []types.OrderList
	pageCalls  []int

	positions types.PositionList

	created   []types.CreateOrderRequest
	createErr map[string]error

	cancelled []int64
	cancelErr map[int64]error

	withdrawals []types.WithdrawRequest
	settles     []types.SettleRequest

	faucetURLs []string
	faucetReqs []types.FaucetRequest
}

func (f *fakeExchange) RegistrationNonce(ctx context.Context) (int64, error) {
	if f.nonceErr != nil {
		return 0, f.nonceErr
	}
	return f.registrationNonce, nil
}

func (f *fakeExchange) WithdrawNonce(ctx context.Context, s *signing.RequestSigner) (int64, error) {
	if f.nonceErr != nil {
		return 0, f.nonceErr
	}
	return f.withdrawNonce, nil
}

func (f *fakeExchange) SettleNonce(ctx context.Context, s *signing.RequestSigner) (int64, error) {
	if f.nonceErr != nil {
		return 0, f.nonceErr
	}
	return f.settleNonce, nil
}

func (f *fakeExchange) RegisterAccount(ctx context.Context, req types.RegisterAccountRequest) (*types.RegisterAccountResult, error) {
	f.registered = append(f.registered, req)
	return &types.RegisterAccountResult{
		AccountID: signing.AccountID(req.UserAddress, req.Message.BrokerID),
	}, nil
}

func (f *fakeExchange) AddOrderlyKey(ctx context.Context, req types.AddKeyRequest) (*types.AddKeyResult, error) {
	if f.addKeyErr != nil {
		return nil, f.addKeyErr
	}
	f.addedKeys = append(f.addedKeys, req)
	return &types.AddKeyResult{OrderlyKey: req.Message.OrderlyKey}, nil
}

func (f *fakeExchange) CreateOrder(ctx context.Context, s *signing.RequestSigner, req types.CreateOrderRequest) (*types.CreateOrderResult, error) {
	if err := f.createErr[req.Symbol]; err != nil {
		return nil, err
	}
	f.created = append(f.created, req)
	return &types.CreateOrderResult{OrderID: int64(len(f.created))}, nil
}

func (f *fakeExchange) GetOrders(ctx context.Context, s *signing.RequestSigner, filter types.GetOrdersFilter) (*types.OrderList, error) {
	f.pageCalls = append(f.pageCalls, filter.Page)
	idx := filter.Page - 1
	if idx < 0 || idx >= len(f.orderPages) {
		return &types.OrderList{}, nil
	}
	page := f.orderPages[idx]
	return &page, nil
}

func (f *fakeExchange) CancelOrder(ctx context.Context, s *signing.RequestSigner, symbol string, orderID int64) (*types.CancelOrderResult, error) {
	if err := f.cancelErr[orderID]; err != nil {
		return nil, err
	}
	f.cancelled = append(f.cancelled, orderID)
	return &types.CancelOrderResult{Status: "CANCEL_SENT"}, nil
}

func (f *fakeExchange) GetPositions(ctx context.Context, s *signing.RequestSigner) (*types.PositionList, error) {
	return &f.positions, nil
}

func (f *fakeExchange) GetHolding(ctx context.Context, s *signing.RequestSigner) (*types.HoldingList, error) {
	return &types.HoldingList{}, nil
}

func (f *fakeExchange) Withdraw(ctx context.Context, s *signing.RequestSigner, req types.WithdrawRequest) (*types.WithdrawResult, error) {
	f.withdrawals = append(f.withdrawals, req)
	return &types.WithdrawResult{WithdrawID: 99}, nil
}

func (f *fakeExchange) SettlePnl(ctx context.Context, s *signing.RequestSigner, req types.SettleRequest) error {
	f.settles = append(f.settles, req)
	return nil
}

func (f *fakeExchange) RequestFaucetUSDC(ctx context.Context, faucetURL string, req types.FaucetRequest) error {
	f.faucetURLs = append(f.faucetURLs, faucetURL)
	f.faucetReqs = append(f.faucetReqs, req)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Exchange: config.ExchangeConfig{
			Environment: config.EnvTestnet,
			BrokerID:    "woofi_pro",
			ChainID:     8453,
		},
	}
}

func testService(t *testing.T, ex *fakeExchange) (*Service, *fakeWallet, *memVault) {
	t.Helper()
	wallet := &fakeWallet{}
	vault := newMemVault()

	kp, err := signing.GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if err := vault.Save(context.Background(), walletID(testWallet), kp.PublicKey, kp.PrivateKeyHex()); err != nil {
		t.Fatalf("seed vault: %v", err)
	}

	svc := New(testConfig(), ex, wallet, vault)
	svc.cancelDelay = 0
	svc.closeDelay = 0
	return svc, wallet, vault
}

func TestRegister(t *testing.T) {
	ex := &fakeExchange{registrationNonce: 4242}
	svc, wallet, _ := testService(t, ex)

	accountID, err := svc.Register(context.Background())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if accountID != signing.AccountID(testWallet, "woofi_pro") {
		t.Errorf("account id = %s", accountID)
	}
	if len(ex.registered) != 1 {
		t.Fatalf("registered %d times", len(ex.registered))
	}
	req := ex.registered[0]
	if req.Message.RegistrationNonce != 4242 {
		t.Errorf("nonce = %d", req.Message.RegistrationNonce)
	}
	if req.UserAddress != testWallet || req.Signature != "0xsigned" {
		t.Errorf("request = %+v", req)
	}
	if len(wallet.signed) != 1 || wallet.signed[0].PrimaryType != signing.PrimaryTypeRegistration {
		t.Errorf("signed payloads: %+v", wallet.signed)
	}
}

func TestRegisterNonceUnavailable(t *testing.T) {
	nonceErr := errors.New("nonce down")
	ex := &fakeExchange{nonceErr: nonceErr}
	svc, wallet, _ := testService(t, ex)

	if _, err := svc.Register(context.Background()); !errors.Is(err, nonceErr) {
		t.Fatalf("want nonce error, got %v", err)
	}
	if len(wallet.signed) != 0 {
		t.Fatal("signed despite missing nonce")
	}
	if len(ex.registered) != 0 {
		t.Fatal("registered despite missing nonce")
	}
}

func TestAddKeyPersistsAfterExchangeAccepts(t *testing.T) {
	ex := &fakeExchange{}
	svc, _, vault := testService(t, ex)

	key, err := svc.AddKey(context.Background())
	if err != nil {
		t.Fatalf("AddKey: %v", err)
	}
	if len(ex.addedKeys) != 1 {
		t.Fatalf("announced %d keys", len(ex.addedKeys))
	}
	msg := ex.addedKeys[0].Message
	if msg.OrderlyKey != key {
		t.Errorf("announced %q, returned %q", msg.OrderlyKey, key)
	}
	if msg.Scope != signing.KeyScope {
		t.Errorf("scope = %q", msg.Scope)
	}
	if msg.Expiration <= msg.Timestamp {
		t.Error("expiration not after timestamp")
	}

	rec, err := vault.Load(context.Background(), walletID(testWallet))
	if err != nil {
		t.Fatalf("vault load: %v", err)
	}
	if rec.PublicKey != key {
		t.Errorf("vault holds %q, want %q", rec.PublicKey, key)
	}
}

func TestAddKeyRejectedNotPersisted(t *testing.T) {
	ex := &fakeExchange{addKeyErr: errors.New("rejected")}
	svc, _, vault := testService(t, ex)

	before, _ := vault.Load(context.Background(), walletID(testWallet))
	if _, err := svc.AddKey(context.Background()); err == nil {
		t.Fatal("AddKey succeeded despite rejection")
	}
	after, _ := vault.Load(context.Background(), walletID(testWallet))
	if before.PublicKey != after.PublicKey {
		t.Fatal("vault overwritten despite exchange rejection")
	}
}

func TestCancelAllSkipsDeadOrders(t *testing.T) {
	ex := &fakeExchange{
		orderPages: []types.OrderList{{
			Rows: []types.Order{
				{OrderID: 1, Symbol: "PERP_ETH_USDC", Status: types.OrderStatusNew},
				{OrderID: 2, Symbol: "PERP_ETH_USDC", Status: types.OrderStatusFilled},
				{OrderID: 3, Symbol: "PERP_BTC_USDC", Status: types.OrderStatusPartialFilled},
			},
			Meta: types.Meta{Total: 3, RecordsPerPage: pageSize, CurrentPage: 1},
		}},
		cancelErr: map[int64]error{3: errors.New("already filled")},
	}
	svc, _, _ := testService(t, ex)

	summary, err := svc.CancelAll(context.Background(), "")
	if err != nil {
		t.Fatalf("CancelAll: %v", err)
	}
	if summary.Attempted != 2 || summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(ex.cancelled) != 1 || ex.cancelled[0] != 1 {
		t.Fatalf("cancelled = %v", ex.cancelled)
	}
	for _, item := range summary.Items {
		if item.OrderID == 2 {
			t.Error("dead order attempted")
		}
	}
}

func TestCancelAllPaginates(t *testing.T) {
	page := func(n, total int, ids ...int64) types.OrderList {
		rows := make([]types.Order, len(ids))
		for i, id := range ids {
			rows[i] = types.Order{OrderID: id, Symbol: "PERP_ETH_USDC", Status: types.OrderStatusNew}
		}
		return types.OrderList{
			Rows: rows,
			Meta: types.Meta{Total: total, RecordsPerPage: pageSize, CurrentPage: n},
		}
	}
	// Total 1200 with size 500 means exactly three pages.
	ex := &fakeExchange{
		orderPages: []types.OrderList{
			page(1, 1200, 1, 2),
			page(2, 1200, 3),
			page(3, 1200, 4),
		},
	}
	svc, _, _ := testService(t, ex)

	summary, err := svc.CancelAll(context.Background(), "")
	if err != nil {
		t.Fatalf("CancelAll: %v", err)
	}
	wantPages := []int{1, 2, 3}
	if len(ex.pageCalls) != len(wantPages) {
		t.Fatalf("page calls = %v", ex.pageCalls)
	}
	for i, p := range wantPages {
		if ex.pageCalls[i] != p {
			t.Fatalf("page calls = %v, want %v", ex.pageCalls, wantPages)
		}
	}
	if summary.Attempted != 4 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestCancelAllInconsistentPagination(t *testing.T) {
	ex := &fakeExchange{
		orderPages: []types.OrderList{
			{Meta: types.Meta{Total: 1000, RecordsPerPage: pageSize, CurrentPage: 1}},
			{Meta: types.Meta{Total: 1000, RecordsPerPage: pageSize, CurrentPage: 5}},
		},
	}
	svc, _, _ := testService(t, ex)

	_, err := svc.CancelAll(context.Background(), "")
	if !errors.Is(err, ErrInconsistentPagination) {
		t.Fatalf("want ErrInconsistentPagination, got %v", err)
	}
}

func TestCloseAllFlattensBothSides(t *testing.T) {
	ex := &fakeExchange{
		positions: types.PositionList{Rows: []types.Position{
			{Symbol: "PERP_ETH_USDC", PositionQty: -5},
			{Symbol: "PERP_BTC_USDC", PositionQty: 0.25},
			{Symbol: "PERP_SOL_USDC", PositionQty: 0},
		}},
	}
	svc, _, _ := testService(t, ex)

	summary, err := svc.CloseAll(context.Background())
	if err != nil {
		t.Fatalf("CloseAll: %v", err)
	}
	if summary.Attempted != 2 || summary.Succeeded != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(ex.created) != 2 {
		t.Fatalf("created %d orders", len(ex.created))
	}

	short := ex.created[0]
	if short.Side != types.SideBuy || *short.OrderQuantity != 5 {
		t.Errorf("short close = %+v", short)
	}
	long := ex.created[1]
	if long.Side != types.SideSell || *long.OrderQuantity != 0.25 {
		t.Errorf("long close = %+v", long)
	}
	for _, o := range ex.created {
		if o.OrderType != types.OrderTypeMarket || !o.ReduceOnly {
			t.Errorf("close order must be reduce-only market: %+v", o)
		}
		if o.ClientOrderID == "" || len(o.ClientOrderID) > 36 {
			t.Errorf("client order id %q", o.ClientOrderID)
		}
		if err := o.Validate(); err != nil {
			t.Errorf("close order fails validation: %v", err)
		}
	}
}

func TestCloseAllIsolatesFailures(t *testing.T) {
	ex := &fakeExchange{
		positions: types.PositionList{Rows: []types.Position{
			{Symbol: "PERP_ETH_USDC", PositionQty: 1},
			{Symbol: "PERP_BTC_USDC", PositionQty: 2},
		}},
		createErr: map[string]error{"PERP_ETH_USDC": errors.New("margin check failed")},
	}
	svc, _, _ := testService(t, ex)

	summary, err := svc.CloseAll(context.Background())
	if err != nil {
		t.Fatalf("CloseAll: %v", err)
	}
	if summary.Attempted != 2 || summary.Succeeded != 1 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(ex.created) != 1 || ex.created[0].Symbol != "PERP_BTC_USDC" {
		t.Fatalf("created = %+v", ex.created)
	}
}

func TestWithdrawValidation(t *testing.T) {
	cases := []struct {
		name   string
		token  string
		amount string
		want   error
	}{
		{"below minimum", "USDC", "1.0", ErrAmountTooSmall},
		{"at minimum ok", "USDC", "1.001", nil},
		{"unknown token", "SHIB", "100", ErrUnsupportedToken},
		{"too much precision", "USDC", "2.0000001", ErrAmountNotScalable},
		{"18 decimals fine", "WETH", "2.0000001", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ex := &fakeExchange{withdrawNonce: 7}
			svc, _, _ := testService(t, ex)

			_, err := svc.Withdraw(context.Background(), WithdrawParams{
				Token:  tc.token,
				Amount: decimal.RequireFromString(tc.amount),
			})
			if tc.want == nil {
				if err != nil {
					t.Fatalf("Withdraw: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("want %v, got %v", tc.want, err)
			}
			if len(ex.withdrawals) != 0 {
				t.Fatal("invalid withdrawal reached the exchange")
			}
		})
	}
}

func TestWithdrawScalesAmount(t *testing.T) {
	ex := &fakeExchange{withdrawNonce: 7}
	svc, _, _ := testService(t, ex)

	id, err := svc.Withdraw(context.Background(), WithdrawParams{
		Token:  "USDC",
		Amount: decimal.RequireFromString("12.5"),
	})
	if err != nil {
		t.Fatalf("Withdraw: %v", err)
	}
	if id != 99 {
		t.Errorf("withdraw id = %d", id)
	}
	req := ex.withdrawals[0]
	if req.Message.Amount != "12500000" {
		t.Errorf("amount = %q, want smallest units", req.Message.Amount)
	}
	if req.Message.WithdrawNonce != "7" {
		t.Errorf("nonce = %q", req.Message.WithdrawNonce)
	}
	if req.Message.Receiver != testWallet {
		t.Errorf("receiver = %q, want custody wallet default", req.Message.Receiver)
	}
	if req.VerifyingContract != signing.SettlementVerifyingContract {
		t.Errorf("verifying contract = %q", req.VerifyingContract)
	}
}

func TestSettlePnl(t *testing.T) {
	ex := &fakeExchange{settleNonce: 11}
	svc, wallet, _ := testService(t, ex)

	if err := svc.SettlePnl(context.Background()); err != nil {
		t.Fatalf("SettlePnl: %v", err)
	}
	if len(ex.settles) != 1 {
		t.Fatalf("settled %d times", len(ex.settles))
	}
	req := ex.settles[0]
	if req.Message.SettleNonce != "11" {
		t.Errorf("nonce = %q", req.Message.SettleNonce)
	}
	if req.VerifyingContract != signing.SettlementVerifyingContract {
		t.Errorf("verifying contract = %q", req.VerifyingContract)
	}
	if len(wallet.signed) != 1 || wallet.signed[0].PrimaryType != signing.PrimaryTypeSettlePnl {
		t.Errorf("signed payloads: %+v", wallet.signed)
	}
}

func TestRequestFaucet(t *testing.T) {
	ex := &fakeExchange{}
	svc, _, _ := testService(t, ex)

	if err := svc.RequestFaucet(context.Background()); err != nil {
		t.Fatalf("RequestFaucet: %v", err)
	}
	if len(ex.faucetReqs) != 1 {
		t.Fatalf("faucet called %d times", len(ex.faucetReqs))
	}
	req := ex.faucetReqs[0]
	if req.ChainID != "8453" {
		t.Errorf("chain id = %q, want decimal string", req.ChainID)
	}
	if req.UserAddress != testWallet || req.BrokerID != "woofi_pro" {
		t.Errorf("request = %+v", req)
	}
	if ex.faucetURLs[0] == "" {
		t.Error("no faucet url resolved")
	}
}

func TestRequestFaucetMainnetRefused(t *testing.T) {
	ex := &fakeExchange{}
	svc, _, _ := testService(t, ex)
	svc.cfg.Exchange.Environment = config.EnvMainnet

	if err := svc.RequestFaucet(context.Background()); !errors.Is(err, ErrFaucetUnavailable) {
		t.Fatalf("want ErrFaucetUnavailable, got %v", err)
	}
	if len(ex.faucetReqs) != 0 {
		t.Fatal("faucet called on mainnet")
	}
}

func TestDeleteKey(t *testing.T) {
	ex := &fakeExchange{}
	svc, _, vault := testService(t, ex)

	existed, err := svc.DeleteKey(context.Background())
	if err != nil {
		t.Fatalf("DeleteKey: %v", err)
	}
	if !existed {
		t.Fatal("seeded key not reported as deleted")
	}
	if _, err := vault.Load(context.Background(), walletID(testWallet)); !errors.Is(err, keyvault.ErrNotFound) {
		t.Fatalf("key still in vault: %v", err)
	}
	if _, err := svc.TradingKey(context.Background()); !errors.Is(err, ErrNoTradingKey) {
		t.Fatalf("want ErrNoTradingKey after delete, got %v", err)
	}

	existed, err = svc.DeleteKey(context.Background())
	if err != nil || existed {
		t.Fatalf("second delete = (%v, %v), want (false, nil)", existed, err)
	}
}

func TestNoTradingKey(t *testing.T) {
	ex := &fakeExchange{}
	wallet := &fakeWallet{}
	svc := New(testConfig(), ex, wallet, newMemVault())

	_, err := svc.CancelAll(context.Background(), "")
	if !errors.Is(err, ErrNoTradingKey) {
		t.Fatalf("want ErrNoTradingKey, got %v", err)
	}
}
