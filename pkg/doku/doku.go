package doku

import (
	"fmt"
	"github.com/PTNUSASATUINTIARTHA-DOKU/doku-golang-library/controllers"
	"github.com/PTNUSASATUINTIARTHA-DOKU/doku-golang-library/doku"
	checkVaModels "github.com/PTNUSASATUINTIARTHA-DOKU/doku-golang-library/models/va/checkVa"
	createVa "github.com/PTNUSASATUINTIARTHA-DOKU/doku-golang-library/models/va/createVa"
	"github.com/sirupsen/logrus"
	"os"
	"strconv"
	"strings"
	"time"
)

type IDokuService interface {
	Init() error
	CreateVirtualAccount(req CreateVaRequest) (*CreateVaResponse, error)
	CheckVAStatus(vaNumber string, customerNo string, partnerServiceId string, trxId string) (bool, error)
}

type dokuService struct {
	client           *doku.Snap
	log              *logrus.Logger
	partnerServiceId string
	customerNo       string
}

func NewDokuService(log *logrus.Logger) IDokuService {
	return &dokuService{
		log: log,
	}
}

func (d *dokuService) Init() error {
	d.log.WithFields(logrus.Fields{
		"client_id":     os.Getenv("DOKU_CLIENT_ID"),
		"is_production": os.Getenv("DOKU_IS_PRODUCTION"),
	}).Info("Initializing Doku client")

	var privateKey string

	privateKeyPEM, err := os.ReadFile("private.key")
	if err != nil {
		return fmt.Errorf("failed to read private key file: %v", err)
	}
	privateKey = strings.TrimSpace(string(privateKeyPEM))

	if !strings.Contains(privateKey, "-----BEGIN") {
		return fmt.Errorf("invalid private key format")
	}

	d.client = &doku.Snap{
		PrivateKey: privateKey,
		PublicKey:  os.Getenv("DOKU_PUBLIC_KEY"),
		ClientId:   os.Getenv("DOKU_CLIENT_ID"),
		SecretKey:  os.Getenv("DOKU_SECRET_KEY"),
		IsProduction: func() bool {
			isProd, _ := strconv.ParseBool(os.Getenv("DOKU_IS_PRODUCTION"))
			return isProd
		}(),
	}

	d.partnerServiceId = os.Getenv("DOKU_PARTNER_SERVICE_ID")
	d.customerNo = os.Getenv("DOKU_CUSTOMER_NO")

	doku.TokenController = &controllers.TokenController{}
	doku.VaController = &controllers.VaController{}
	doku.NotificationController = &controllers.NotificationController{}

	response := d.client.GetTokenB2B()

	if response.ResponseCode != "2007300" {
		return fmt.Errorf("failed to initialize Doku client: %s", response.ResponseMessage)
	}

	return nil
}

func (d *dokuService) CreateVirtualAccount(req CreateVaRequest) (*CreateVaResponse, error) {
	amountStr := fmt.Sprintf("%.2f", req.Amount)

	virtualAccountNo := d.partnerServiceId + d.customerNo

	loc, _ := time.LoadLocation("Asia/Jakarta")
	expiredTime := time.Now().In(loc).Add(req.ExpiredDuration)
	expiredDate := expiredTime.Format("2006-01-02T15:04:05") + "+07:00"

	createVaRequest := createVa.CreateVaRequestDto{
		PartnerServiceId:    d.partnerServiceId,
		CustomerNo:          d.customerNo,
		VirtualAccountNo:    virtualAccountNo,
		VirtualAccountName:  req.Name,
		VirtualAccountEmail: req.Email,
		VirtualAccountPhone: req.Phone,
		TrxId:               req.TrxId,
		TotalAmount: createVa.TotalAmount{
			Value:    amountStr,
			Currency: "IDR",
		},
		AdditionalInfo: createVa.AdditionalInfo{
			Channel: req.Bank,
			VirtualAccountConfig: createVa.VirtualAccountConfig{
				ReusableStatus: false,
			},
		},
		VirtualAccountTrxType: "C",
		ExpiredDate:           expiredDate,
	}

	response, err := d.client.CreateVa(createVaRequest)
	if err != nil {
		d.log.WithError(err).Error("Failed to create virtual account")
		return nil, err
	}

	if response.ResponseCode != "2002500" && response.ResponseCode != "2002700" {
		d.log.WithFields(logrus.Fields{
			"response_code":    response.ResponseCode,
			"response_message": response.ResponseMessage,
		}).Error("Failed to create virtual account")
		return nil, fmt.Errorf("failed to create virtual account: %s", response.ResponseMessage)
	}

	if response.VirtualAccountData == nil {
		return nil, fmt.Errorf("virtual account data is nil")
	}

	return &CreateVaResponse{
		VirtualAccountNo:  response.VirtualAccountData.VirtualAccountNo,
		Bank:              req.Bank,
		Amount:            req.Amount,
		TransactionID:     req.TrxId,
		ExpiryDate:        createVaRequest.ExpiredDate,
		VirtualAccountURL: response.VirtualAccountData.AdditionalInfo.HowToPayPage,
	}, nil
}

func (d *dokuService) CheckVAStatus(vaNumber string, customerNo string, partnerServiceId string, trxId string) (bool, error) {
	checkStatusRequest := checkVaModels.CheckStatusVARequestDto{
		PartnerServiceId: partnerServiceId,
		CustomerNo:       customerNo,
		VirtualAccountNo: vaNumber,
	}

	response, err := d.client.CheckStatusVa(checkStatusRequest)
	if err != nil {
		d.log.WithError(err).Error("Failed to check VA status")
		return false, err
	}

	if (response.ResponseCode == "2002600" || response.ResponseCode == "2002400") && response.VirtualAccountData != nil {
		if response.VirtualAccountData.PaidAmount.Value != "0.00" {
			return true, nil
		}
	}

	return false, nil
}
